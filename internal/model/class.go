package model

import "time"

// Class represents a grade/class ("série") belonging to one school.
type Class struct {
	ID           int       `json:"id"`
	SchoolID     int       `json:"escola_id"`
	Name         string    `json:"nome"`
	Active       bool      `json:"ativo"`
	AcademicYear int       `json:"ano_letivo"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClassSummary is a class with its active enrolment count.
type ClassSummary struct {
	ID            int    `json:"id"`
	Name          string `json:"nome"`
	AcademicYear  int    `json:"ano_letivo"`
	StudentsCount int    `json:"total_alunos"`
}
