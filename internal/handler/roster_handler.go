package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// RosterService is the part of *service.RosterService the handler uses.
type RosterService interface {
	ListClasses(ctx context.Context, schoolID int) ([]model.ClassSummary, error)
	ListStudents(ctx context.Context, schoolID int) ([]model.Student, error)
	ListStudentsDetailed(ctx context.Context, schoolID int) ([]model.StudentDetail, error)
}

// RosterHandler serves the read-only class and student listings.
type RosterHandler struct {
	rosterService RosterService
	log           zerolog.Logger
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService RosterService, log zerolog.Logger) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		log:           log.With().Str("component", "roster_handler").Logger(),
	}
}

// ListClasses godoc
// GET /series
// Lists the school's active classes with enrolment counts.
func (h *RosterHandler) ListClasses(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	classes, err := h.rosterService.ListClasses(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"series": classes})
}

// ListStudents godoc
// GET /alunos
func (h *RosterHandler) ListStudents(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	students, err := h.rosterService.ListStudents(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alunos": students})
}

// ListStudentsDetailed godoc
// GET /alunos/detalhado
// Lists students with points, completed tasks and quizzes, and guardian contact.
func (h *RosterHandler) ListStudentsDetailed(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	students, err := h.rosterService.ListStudentsDetailed(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alunos": students})
}
