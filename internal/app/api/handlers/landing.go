package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Try Once API</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; min-height: 100vh;
           display: flex; align-items: center; justify-content: center; background: #fff5f7; color: #282c3f; }
    main { text-align: center; padding: 2rem; }
    h1 { color: #ff3f6c; font-size: 2.5rem; margin-bottom: .25rem; }
    p { color: #696e79; }
    a { display: inline-block; margin: .25rem .5rem; color: #ff3f6c; text-decoration: none; font-weight: 600; }
  </style>
</head>
<body>
  <main>
    <h1>Try Once</h1>
    <p>The Try Once API is up and running.</p>
    <nav>
      <a href="/api/health">/api/health</a>
      <a href="/api/products">/api/products</a>
      <a href="/api/products/categories">/api/products/categories</a>
    </nav>
  </main>
</body>
</html>
`

// Landing serves the static HTML landing page.
func Landing(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
}
