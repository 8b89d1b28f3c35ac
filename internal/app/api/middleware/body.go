package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/tryonce/pkg/httperr"
)

const (
	RawBodyKey = "rawBody"
	FormKey    = "form"
)

var (
	ErrBodyTooLarge  = errors.New("request body too large")
	ErrMalformedJSON = errors.New("malformed JSON body")
	ErrMalformedForm = errors.New("malformed form body")
)

func isJSONContentType(ct string) bool {
	return ct == gin.MIMEJSON || strings.HasSuffix(ct, "+json")
}

// JSONBodyMiddleware buffers every request body up to limit bytes, whatever
// its Content-Type, and checks JSON-typed bodies are well formed.
// ShouldBindJSON decodes regardless of the header.
func JSONBodyMiddleware(limit int64, onReject func(status int)) gin.HandlerFunc {
	reject := func(c *gin.Context, err *httperr.Error) {
		if onReject != nil {
			onReject(err.Status)
		}
		_ = c.Error(err)
		c.Abort()
	}
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			reject(c, httperr.Wrap(http.StatusRequestEntityTooLarge, ErrBodyTooLarge))
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				reject(c, httperr.Wrap(http.StatusRequestEntityTooLarge, ErrBodyTooLarge))
				return
			}
			reject(c, httperr.BadRequest(fmt.Errorf("failed to read body: %w", err)))
			return
		}
		if isJSONContentType(c.ContentType()) && len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
			reject(c, httperr.BadRequest(ErrMalformedJSON))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Set(RawBodyKey, body)
		c.Next()
	}
}

// FormBodyMiddleware parses URL-encoded bodies. Bracketed keys such as
// user[address][city] are also exposed as a nested map under FormKey.
func FormBodyMiddleware(onReject func(status int)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEPOSTForm {
			c.Next()
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			if onReject != nil {
				onReject(http.StatusBadRequest)
			}
			_ = c.Error(httperr.BadRequest(fmt.Errorf("%w: %v", ErrMalformedForm, err)))
			c.Abort()
			return
		}
		c.Set(FormKey, NestForm(c.Request.PostForm))
		c.Next()
	}
}

// NestForm expands bracketed keys into nested maps. A key seen once maps to
// a string, repeated keys map to []string. Keys ending in [] always map to
// []string.
func NestForm(values map[string][]string) map[string]any {
	out := map[string]any{}
	for key, vals := range values {
		path, list := splitFormKey(key)
		if len(path) == 0 {
			continue
		}
		node := out
		for _, part := range path[:len(path)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
		leaf := path[len(path)-1]
		if list || len(vals) > 1 {
			node[leaf] = append([]string(nil), vals...)
		} else if len(vals) == 1 {
			node[leaf] = vals[0]
		}
	}
	return out
}

func splitFormKey(key string) (path []string, list bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}, false
	}
	path = append(path, key[:open])
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return []string{key}, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}, false
		}
		part := rest[1:end]
		rest = rest[end+1:]
		if part == "" {
			if len(rest) != 0 {
				return []string{key}, false
			}
			return path, true
		}
		path = append(path, part)
	}
	return path, false
}

// Form returns the nested form parsed by FormBodyMiddleware.
func Form(c *gin.Context) map[string]any {
	if v, ok := c.Get(FormKey); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return map[string]any{}
}
