package service

import (
	"context"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
)

// RosterService exposes the read-only class and student listings of a school.
type RosterService struct {
	classRepo   *repository.ClassRepository
	studentRepo *repository.StudentRepository
}

// NewRosterService creates a new RosterService.
func NewRosterService(classRepo *repository.ClassRepository, studentRepo *repository.StudentRepository) *RosterService {
	return &RosterService{classRepo: classRepo, studentRepo: studentRepo}
}

// ListClasses returns the school's active classes with enrolment counts.
func (s *RosterService) ListClasses(ctx context.Context, schoolID int) ([]model.ClassSummary, error) {
	return s.classRepo.ListActiveWithCounts(ctx, schoolID)
}

// ListStudents returns the school's active students.
func (s *RosterService) ListStudents(ctx context.Context, schoolID int) ([]model.Student, error) {
	return s.studentRepo.ListBySchool(ctx, schoolID)
}

// ListStudentsDetailed returns the school's active students with progress.
func (s *RosterService) ListStudentsDetailed(ctx context.Context, schoolID int) ([]model.StudentDetail, error) {
	return s.studentRepo.ListDetailedBySchool(ctx, schoolID)
}
