package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticMiddleware serves existing files under prefix from dir and stops
// the chain. Anything else, including missing files, falls through.
func StaticMiddleware(prefix, dir string) gin.HandlerFunc {
	prefix = strings.TrimSuffix(prefix, "/")
	fs := gin.Dir(dir, false)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}
		p := c.Request.URL.Path
		if !strings.HasPrefix(p, prefix+"/") {
			c.Next()
			return
		}
		name := path.Clean("/" + strings.TrimPrefix(p, prefix))
		if name == "/" {
			c.Next()
			return
		}
		f, err := fs.Open(name)
		if err != nil {
			c.Next()
			return
		}
		st, err := f.Stat()
		_ = f.Close()
		if err != nil || st.IsDir() {
			c.Next()
			return
		}
		c.FileFromFS(name, fs)
		c.Abort()
	}
}
