package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// DashboardService is the part of *service.DashboardService the handler uses.
type DashboardService interface {
	GetStats(ctx context.Context, schoolID int) (*model.DashboardStats, error)
	GetRecentActivities(ctx context.Context, schoolID int) ([]model.RecentActivity, error)
}

// DashboardHandler handles school dashboard endpoints.
type DashboardHandler struct {
	dashboardService DashboardService
	log              zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService DashboardService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log.With().Str("component", "dashboard_handler").Logger(),
	}
}

// GetStats godoc
// GET /dashboard/estatisticas
func (h *DashboardHandler) GetStats(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// GetRecentActivities godoc
// GET /dashboard/atividades-recentes
// Returns the 10 latest quizzes, tasks and messages, newest first.
func (h *DashboardHandler) GetRecentActivities(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	activities, err := h.dashboardService.GetRecentActivities(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"atividades": activities})
}
