package middleware

import "github.com/gin-gonic/gin"

const CookiesKey = "cookies"

// CookieMiddleware exposes request cookies as an opaque name/value map.
// Cookies are not signed or verified.
func CookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies := c.Request.Cookies()
		m := make(map[string]string, len(cookies))
		for _, ck := range cookies {
			if _, seen := m[ck.Name]; !seen {
				m[ck.Name] = ck.Value
			}
		}
		c.Set(CookiesKey, m)
		c.Next()
	}
}

// Cookies returns the map built by CookieMiddleware, falling back to the raw
// request when the stage did not run.
func Cookies(c *gin.Context) map[string]string {
	if v, ok := c.Get(CookiesKey); ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	m := map[string]string{}
	for _, ck := range c.Request.Cookies() {
		if _, seen := m[ck.Name]; !seen {
			m[ck.Name] = ck.Value
		}
	}
	return m
}
