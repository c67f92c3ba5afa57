package model

import "time"

// SchoolStatus is the lifecycle state of a school account.
type SchoolStatus string

const (
	SchoolStatusActive    SchoolStatus = "ativo"
	SchoolStatusInactive  SchoolStatus = "inativo"
	SchoolStatusSuspended SchoolStatus = "suspenso"
)

// School represents a registered school account.
type School struct {
	ID            int          `json:"id"`
	Name          string       `json:"nome"`
	TaxID         string       `json:"cnpj"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	Phone         string       `json:"telefone"`
	Address       string       `json:"endereco"`
	City          string       `json:"cidade"`
	State         string       `json:"estado"`
	PostalCode    string       `json:"cep"`
	SchoolType    string       `json:"tipo_escola,omitempty"`
	DirectorName  string       `json:"diretor_nome"`
	DirectorEmail string       `json:"diretor_email"`
	DirectorPhone string       `json:"diretor_telefone"`
	StudentCount  int          `json:"quantidade_alunos"`
	Status        SchoolStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Summary returns the public projection of s returned after login/registration.
func (s *School) Summary() SchoolSummary {
	return SchoolSummary{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Role:   RoleSchool,
		Status: s.Status,
	}
}

// SchoolSummary is the school projection embedded in auth responses.
type SchoolSummary struct {
	ID     int          `json:"id"`
	Name   string       `json:"nome"`
	Email  string       `json:"email"`
	Role   Role         `json:"tipo"`
	Status SchoolStatus `json:"status"`
}

// SchoolListItem is returned by the public school listing.
type SchoolListItem struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

// RegisterSchoolRequest is the payload for school self-registration.
type RegisterSchoolRequest struct {
	Name          string   `json:"nome" binding:"required"`
	TaxID         string   `json:"cnpj" binding:"required"`
	Email         string   `json:"email" binding:"required"`
	Password      string   `json:"senha" binding:"required"`
	Phone         string   `json:"telefone" binding:"required"`
	Address       string   `json:"endereco" binding:"required"`
	City          string   `json:"cidade" binding:"required"`
	State         string   `json:"estado" binding:"required"`
	PostalCode    string   `json:"cep" binding:"required"`
	SchoolType    string   `json:"tipo_escola"`
	DirectorName  string   `json:"diretor_nome" binding:"required"`
	DirectorEmail string   `json:"diretor_email" binding:"required"`
	DirectorPhone string   `json:"diretor_telefone" binding:"required"`
	StudentCount  int      `json:"quantidade_alunos" binding:"required"`
	Classes       []string `json:"series" binding:"required,min=1,dive,required"`
}

// LoginRequest is the payload for school authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// ChangePasswordRequest is the payload for the authenticated credential change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"senha_atual" binding:"required"`
	NewPassword     string `json:"nova_senha" binding:"required"`
}
