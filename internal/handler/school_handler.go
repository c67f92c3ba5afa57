package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// SchoolService is the part of *service.SchoolService the handler uses.
type SchoolService interface {
	Register(ctx context.Context, req *model.RegisterSchoolRequest) (*model.School, string, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.School, string, error)
	ChangePassword(ctx context.Context, schoolID int, req *model.ChangePasswordRequest) error
	ListActive(ctx context.Context) ([]model.SchoolListItem, error)
}

// SchoolHandler handles school registration, login, credentials and the
// public listing.
type SchoolHandler struct {
	schoolService SchoolService
	log           zerolog.Logger
}

// NewSchoolHandler creates a new SchoolHandler.
func NewSchoolHandler(schoolService SchoolService, log zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
		log:           log.With().Str("component", "school_handler").Logger(),
	}
}

// Register godoc
// POST /cadastro
// Registers a school with its initial classes and returns a signed token.
func (h *SchoolHandler) Register(c *gin.Context) {
	var req model.RegisterSchoolRequest
	if !bindJSON(c, &req) {
		return
	}

	school, token, err := h.schoolService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Escola cadastrada com sucesso",
		"escola":  school.Summary(),
		"token":   token,
	})
}

// Login godoc
// POST /login
// Authenticates a school by email and password.
func (h *SchoolHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	school, token, err := h.schoolService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"escola":  school.Summary(),
		"token":   token,
	})
}

// ChangePassword godoc
// POST /alterar-senha
// Replaces the authenticated school's password.
func (h *SchoolHandler) ChangePassword(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	var req model.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.schoolService.ChangePassword(c.Request.Context(), id, &req); err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Senha alterada com sucesso"})
}

// List godoc
// GET /listar
// Lists active schools. Public.
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schoolService.ListActive(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"escolas": schools})
}
