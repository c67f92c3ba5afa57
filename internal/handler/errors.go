package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/middleware"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/service"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/validator"
)

// bindJSON decodes the body into dst and answers 400 on failure.
// Returns false when the handler must stop.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := validator.Bind(c, dst)
	if err == nil {
		return true
	}
	_ = c.Error(err).SetType(gin.ErrorTypeBind).SetMeta(validator.TranslateErrors(err))
	if fields := validator.FieldNames(err); fields != nil {
		response.FailMessage(c, http.StatusBadRequest, service.MissingFieldsError(fields).Message)
		return false
	}
	response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	return false
}

// schoolID returns the authenticated school id, answering 401 if absent.
func schoolID(c *gin.Context) (int, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return 0, false
	}
	return claims.ID, true
}

// handleServiceError maps service errors to HTTP responses. Anything
// unrecognised is a 500 with the generic message.
func handleServiceError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr *service.ValidationError
	var inactiveErr *service.SchoolInactiveError

	switch {
	case errors.As(err, &validationErr):
		response.FailMessage(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &inactiveErr):
		response.FailMessage(c, http.StatusForbidden, inactiveErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrWrongPassword):
		response.Fail(c, http.StatusBadRequest, response.ErrWrongPassword)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, response.ErrEmailTaken)
	case errors.Is(err, service.ErrCNPJTaken):
		response.Fail(c, http.StatusBadRequest, response.ErrCNPJTaken)
	case errors.Is(err, service.ErrSchoolNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSchoolNotFound)
	default:
		response.Internal(c, log, err)
	}
}
