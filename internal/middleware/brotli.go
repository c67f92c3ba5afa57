package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// BrotliConfig tunes response compression.
type BrotliConfig struct {
	Quality   int
	MinLength int
	// Skipper bypasses compression for matching requests.
	Skipper func(c *gin.Context) bool
}

// DefaultBrotliConfig compresses bodies of at least 1 KiB.
var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
}

// precompressedTypes are media types whose payload is already compressed.
var precompressedTypes = map[string]bool{
	"application/pdf": true,
	"application/zip": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

type brotliMode int

const (
	brotliUndecided brotliMode = iota
	brotliOn
	brotliOff
)

// brotliWriter buffers until MinLength bytes are written, then commits to
// either a brotli stream or a plain passthrough for the rest of the body.
type brotliWriter struct {
	gin.ResponseWriter
	quality   int
	minLength int
	buf       []byte
	mode      brotliMode
	writer    *brotli.Writer
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	switch bw.mode {
	case brotliOn:
		return bw.writer.Write(data)
	case brotliOff:
		return bw.ResponseWriter.Write(data)
	}

	bw.buf = append(bw.buf, data...)
	if len(bw.buf) < bw.minLength {
		return len(data), nil
	}

	bw.decide()
	if err := bw.flushBuffer(); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

func (bw *brotliWriter) decide() {
	header := bw.ResponseWriter.Header()
	if header.Get("Content-Encoding") != "" || !compressible(header.Get("Content-Type")) {
		bw.mode = brotliOff
		return
	}
	bw.mode = brotliOn
	header.Set("Content-Encoding", "br")
	header.Del("Content-Length")
	bw.writer = brotli.NewWriterLevel(bw.ResponseWriter, bw.quality)
}

func (bw *brotliWriter) flushBuffer() error {
	if len(bw.buf) == 0 {
		return nil
	}
	var err error
	if bw.mode == brotliOn {
		_, err = bw.writer.Write(bw.buf)
	} else {
		_, err = bw.ResponseWriter.Write(bw.buf)
	}
	bw.buf = nil
	return err
}

// finish writes a short body uncompressed or closes the brotli stream.
func (bw *brotliWriter) finish() error {
	if bw.mode == brotliUndecided {
		bw.mode = brotliOff
	}
	if err := bw.flushBuffer(); err != nil {
		return err
	}
	if bw.mode == brotliOn {
		return bw.writer.Close()
	}
	return nil
}

// BrotliWithConfig compresses responses for clients that accept "br".
func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < brotli.BestSpeed || cfg.Quality > brotli.BestCompression {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}
		if cfg.Skipper != nil && cfg.Skipper(c) {
			c.Next()
			return
		}

		// Append so Vary: Origin from CORS survives.
		c.Writer.Header().Add("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			quality:        cfg.Quality,
			minLength:      cfg.MinLength,
		}
		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Writer = bw
		c.Next()
	}
}

// SkipPaths returns a Skipper matching any of the given path prefixes.
func SkipPaths(prefixes ...string) func(c *gin.Context) bool {
	return func(c *gin.Context) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				return true
			}
		}
		return false
	}
}

func compressible(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if precompressedTypes[mediaType] {
		return false
	}
	return !strings.HasPrefix(mediaType, "image/") &&
		!strings.HasPrefix(mediaType, "video/") &&
		!strings.HasPrefix(mediaType, "audio/")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "br") {
			continue
		}
		// "br;q=0" explicitly refuses the encoding.
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
