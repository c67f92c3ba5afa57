package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/observability"
)

// ErrorBody is the only error shape the API emits.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends a JSON body with the given status code.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends an error response with the canned message for code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code)})
}

// FailMessage sends an error response with a rule-specific message.
func FailMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: GetMessage(code)})
}

// Internal logs err with the request context, reports it, and answers 500
// with the generic message. The original error never reaches the caller.
func Internal(c *gin.Context, log zerolog.Logger, err error) {
	log.Error().
		Err(err).
		Str("request_id", RequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("request failed")
	observability.CaptureErr(err)
	Fail(c, http.StatusInternalServerError, ErrInternal)
}
