package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl marks successful responses as publicly cacheable for
// maxAgeSeconds. Error responses are sent with no-store so a shared cache
// never replays a failure. Used on the unauthenticated school listing.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	return func(c *gin.Context) {
		c.Writer = &cacheWriter{ResponseWriter: c.Writer, value: value}
		c.Next()
	}
}

// NoStore forbids caching of authenticated, per-school responses.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// cacheWriter picks the Cache-Control value once the status is known and
// before any header reaches the client.
type cacheWriter struct {
	gin.ResponseWriter
	value   string
	decided bool
}

func (w *cacheWriter) decide(status int) {
	if w.decided {
		return
	}
	w.decided = true
	if status >= 200 && status < 300 {
		w.Header().Set("Cache-Control", w.value)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
}

func (w *cacheWriter) WriteHeader(code int) {
	w.decide(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) WriteHeaderNow() {
	w.decide(w.Status())
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.decide(w.Status())
	return w.ResponseWriter.Write(data)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.decide(w.Status())
	return w.ResponseWriter.WriteString(s)
}
