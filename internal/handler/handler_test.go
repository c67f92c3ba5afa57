package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/middleware"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/service"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.Setup(); err != nil {
		panic(err)
	}
}

// withSchool injects claims the way RequireRole does.
func withSchool(id int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, &service.Claims{ID: id, Email: "escola@example.com", Role: model.RoleSchool})
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	body := decode(t, w)
	if len(body) != 1 {
		t.Fatalf("error body must only carry \"error\", got %v", body)
	}
	if message != "" && body["error"] != message {
		t.Fatalf("error = %q, want %q", body["error"], message)
	}
}
