package service

import (
	"context"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
)

// DashboardService handles school dashboard business logic.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetStats returns the dashboard counters for the school.
func (s *DashboardService) GetStats(ctx context.Context, schoolID int) (*model.DashboardStats, error) {
	return s.dashboardRepo.GetStats(ctx, schoolID)
}

// GetRecentActivities returns the school's latest quizzes, tasks and messages.
func (s *DashboardService) GetRecentActivities(ctx context.Context, schoolID int) ([]model.RecentActivity, error) {
	return s.dashboardRepo.GetRecentActivities(ctx, schoolID)
}
