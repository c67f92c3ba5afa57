package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/validator"
)

const minPasswordLength = 6

// SchoolService handles school registration, login and credentials.
type SchoolService struct {
	db         database.TxBeginner
	schoolRepo *repository.SchoolRepository
	classRepo  *repository.ClassRepository
	auth       *AuthService
	log        zerolog.Logger
	now        func() time.Time
}

// NewSchoolService creates a new SchoolService.
func NewSchoolService(
	db database.TxBeginner,
	schoolRepo *repository.SchoolRepository,
	classRepo *repository.ClassRepository,
	auth *AuthService,
	log zerolog.Logger,
) *SchoolService {
	return &SchoolService{
		db:         db,
		schoolRepo: schoolRepo,
		classRepo:  classRepo,
		auth:       auth,
		log:        log.With().Str("component", "school_service").Logger(),
		now:        time.Now,
	}
}

// validateRegistration applies the registration format rules in order and
// reports the first failure. Presence is checked earlier, when binding.
func validateRegistration(req *model.RegisterSchoolRequest) error {
	if err := validator.Check(
		validator.Rule{Value: req.Email, Tag: "email", Message: "Email inválido"},
		validator.Rule{Value: req.Password, Tag: fmt.Sprintf("min=%d", minPasswordLength), Message: "A senha deve ter pelo menos 6 caracteres"},
		validator.Rule{Value: req.Phone, Tag: "telefone", Message: "Telefone inválido. Use o formato (XX) XXXXX-XXXX"},
		validator.Rule{Value: req.DirectorPhone, Tag: "telefone", Message: "Telefone do diretor inválido. Use o formato (XX) XXXXX-XXXX"},
		validator.Rule{Value: req.TaxID, Tag: "cnpj", Message: "CNPJ inválido. Use o formato XX.XXX.XXX/XXXX-XX"},
		validator.Rule{Value: req.PostalCode, Tag: "cep", Message: "CEP inválido. Use o formato XXXXX-XXX"},
		validator.Rule{Value: req.DirectorEmail, Tag: "email", Message: "Email do diretor inválido"},
		validator.Rule{Value: req.StudentCount, Tag: "gt=0", Message: "A quantidade de alunos deve ser maior que zero"},
	); err != nil {
		return &ValidationError{Message: err.Message}
	}
	return nil
}

// Register creates the school and its classes in one transaction and
// returns the stored school with a signed token.
func (s *SchoolService) Register(ctx context.Context, req *model.RegisterSchoolRequest) (*model.School, string, error) {
	if err := validateRegistration(req); err != nil {
		return nil, "", err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	school := &model.School{
		Name:          strings.TrimSpace(req.Name),
		TaxID:         req.TaxID,
		Email:         strings.TrimSpace(req.Email),
		PasswordHash:  hash,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		SchoolType:    req.SchoolType,
		DirectorName:  req.DirectorName,
		DirectorEmail: req.DirectorEmail,
		DirectorPhone: req.DirectorPhone,
		StudentCount:  req.StudentCount,
		Status:        model.SchoolStatusActive,
	}
	year := s.now().Year()

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.schoolRepo.WithTx(tx).Create(ctx, school); err != nil {
			return err
		}
		classes := s.classRepo.WithTx(tx)
		for _, name := range req.Classes {
			class := &model.Class{
				SchoolID:     school.ID,
				Name:         strings.TrimSpace(name),
				Active:       true,
				AcademicYear: year,
			}
			if err := classes.Create(ctx, class); err != nil {
				return fmt.Errorf("create class %q: %w", name, err)
			}
		}
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, "", ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateCNPJ):
		return nil, "", ErrCNPJTaken
	case err != nil:
		return nil, "", fmt.Errorf("register school: %w", err)
	}

	token, err := s.auth.GenerateToken(school.ID, school.Email)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().
		Int("school_id", school.ID).
		Int("classes", len(req.Classes)).
		Msg("School registered")

	return school, token, nil
}

// Login authenticates a school by email and password.
func (s *SchoolService) Login(ctx context.Context, req *model.LoginRequest) (*model.School, string, error) {
	school, err := s.schoolRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("get school: %w", err)
	}

	if err := s.auth.CheckPassword(school.PasswordHash, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if school.Status != model.SchoolStatusActive {
		return nil, "", &SchoolInactiveError{Status: string(school.Status)}
	}

	token, err := s.auth.GenerateToken(school.ID, school.Email)
	if err != nil {
		return nil, "", err
	}
	return school, token, nil
}

// ChangePassword replaces the school's password after verifying the current one.
func (s *SchoolService) ChangePassword(ctx context.Context, schoolID int, req *model.ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return &ValidationError{Message: "A nova senha deve ter pelo menos 6 caracteres"}
	}

	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSchoolNotFound
	}
	if err != nil {
		return fmt.Errorf("get school: %w", err)
	}

	if err := s.auth.CheckPassword(school.PasswordHash, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.schoolRepo.UpdatePassword(ctx, schoolID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Int("school_id", schoolID).Msg("Password changed")
	return nil
}

// ListActive returns the public listing of active schools.
func (s *SchoolService) ListActive(ctx context.Context) ([]model.SchoolListItem, error) {
	return s.schoolRepo.ListActive(ctx)
}
