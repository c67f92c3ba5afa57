package model

import (
	"encoding/json"
	"time"
)

// ReportType selects which sub-reports are built.
type ReportType string

const (
	ReportGeneral     ReportType = "geral"
	ReportPerformance ReportType = "desempenho"
	ReportActivities  ReportType = "atividades"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportGeneral, ReportPerformance, ReportActivities:
		return true
	}
	return false
}

// IncludesBreakdowns reports whether per-class and per-subject sections apply.
func (t ReportType) IncludesBreakdowns() bool {
	return t == ReportGeneral || t == ReportPerformance
}

// IncludesActivities reports whether the recent activities section applies.
func (t ReportType) IncludesActivities() bool {
	return t == ReportGeneral || t == ReportActivities
}

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "excel"
)

// ReportParams are the parsed query parameters shared by report endpoints.
type ReportParams struct {
	SchoolID int
	Days     int
	ClassID  *int
	Subject  string
	Type     ReportType
}

// Since returns the lower bound of the reporting window relative to now.
func (p ReportParams) Since(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.Days)
}

// ReportSummary is the always-present headline section.
type ReportSummary struct {
	TotalStudents int     `json:"total_alunos"`
	TotalTasks    int     `json:"total_tarefas"`
	TotalQuizzes  int     `json:"total_quizzes"`
	AverageScore  float64 `json:"media_geral"`
}

// ClassReport aggregates activity for one class.
type ClassReport struct {
	ClassID       int     `json:"serie_id"`
	ClassName     string  `json:"serie"`
	TotalStudents int     `json:"total_alunos"`
	TotalTasks    int     `json:"total_tarefas"`
	TotalQuizzes  int     `json:"total_quizzes"`
	QuizAverage   float64 `json:"media_quiz"`
}

// SubjectReport aggregates activity for one subject.
type SubjectReport struct {
	Subject      string  `json:"materia"`
	TotalTasks   int     `json:"total_tarefas"`
	TotalQuizzes int     `json:"total_quizzes"`
	QuizAverage  float64 `json:"media_quiz"`
}

// ActivityReport is one recent quiz or task with participation figures.
type ActivityReport struct {
	Kind           ActivityKind `json:"tipo"`
	ID             int          `json:"id"`
	Title          string       `json:"titulo"`
	Subject        string       `json:"materia"`
	ClassName      *string      `json:"serie"`
	CreatedAt      time.Time    `json:"created_at"`
	Participants   int          `json:"participantes"`
	CompletionRate float64      `json:"taxa_conclusao"`
}

// Report is the assembled report. Sections outside Type are left out of the
// JSON body; empty sections that do apply encode as [].
type Report struct {
	Type             ReportType
	PeriodDays       int
	GeneratedAt      time.Time
	Summary          ReportSummary
	ByClass          []ClassReport
	BySubject        []SubjectReport
	RecentActivities []ActivityReport
}

// MarshalJSON implements json.Marshaler.
func (r Report) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"tipo_relatorio": r.Type,
		"periodo":        r.PeriodDays,
		"gerado_em":      r.GeneratedAt,
		"resumo":         r.Summary,
	}
	if r.Type.IncludesBreakdowns() {
		body["por_serie"] = nonNil(r.ByClass)
		body["por_materia"] = nonNil(r.BySubject)
	}
	if r.Type.IncludesActivities() {
		body["atividades_recentes"] = nonNil(r.RecentActivities)
	}
	return json.Marshal(body)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
