package service

import (
	"errors"
	"fmt"
	"strings"
)

// Common service errors. Handlers map them to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrSchoolNotFound     = errors.New("school not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCNPJTaken          = errors.New("cnpj already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// missingFieldsPrefix is shared by every "required field" validation message.
const missingFieldsPrefix = "Todos os campos obrigatórios devem ser preenchidos"

// ValidationError is a client input error carrying the message to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// MissingFieldsError names the absent required fields.
func MissingFieldsError(fields []string) *ValidationError {
	if len(fields) == 0 {
		return &ValidationError{Message: missingFieldsPrefix}
	}
	return &ValidationError{Message: missingFieldsPrefix + ": " + strings.Join(fields, ", ")}
}

// SchoolInactiveError is returned by Login when the account is not active.
type SchoolInactiveError struct {
	Status string
}

func (e *SchoolInactiveError) Error() string {
	return fmt.Sprintf("Escola com status %s. Entre em contato com o suporte.", e.Status)
}
