package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/export"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
)

// Report period bounds, in days.
const (
	defaultReportDays = 30
	maxReportDays     = 3650
)

// ReportQuery holds the raw query-string values of a report request.
type ReportQuery struct {
	Period  string
	ClassID string
	Subject string
	Type    string
	Format  string
}

// Document is a rendered report ready to be sent as an attachment.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ReportService assembles reports and renders them for export.
type ReportService struct {
	reportRepo *repository.ReportRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo *repository.ReportRepository, log zerolog.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		log:        log.With().Str("component", "report_service").Logger(),
		now:        time.Now,
	}
}

// ParseReportParams validates the raw query values for the given school.
func ParseReportParams(schoolID int, q ReportQuery) (model.ReportParams, error) {
	p := model.ReportParams{
		SchoolID: schoolID,
		Days:     defaultReportDays,
		Subject:  strings.TrimSpace(q.Subject),
		Type:     model.ReportGeneral,
	}

	if raw := strings.TrimSpace(q.Period); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 || days > maxReportDays {
			return p, NewValidationError("Período inválido. Informe um número de dias entre 1 e %d", maxReportDays)
		}
		p.Days = days
	}

	if raw := strings.TrimSpace(q.ClassID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return p, NewValidationError("serie_id inválido")
		}
		p.ClassID = &id
	}

	if raw := strings.TrimSpace(q.Type); raw != "" {
		p.Type = model.ReportType(raw)
		if !p.Type.Valid() {
			return p, NewValidationError("Tipo de relatório inválido. Use geral, desempenho ou atividades")
		}
	}

	return p, nil
}

// ParseExportFormat validates the export format, defaulting to PDF.
func ParseExportFormat(raw string) (model.ExportFormat, error) {
	switch f := model.ExportFormat(strings.TrimSpace(raw)); f {
	case "":
		return model.ExportPDF, nil
	case model.ExportPDF, model.ExportExcel:
		return f, nil
	}
	return "", NewValidationError("Formato inválido. Use pdf ou excel")
}

// Build runs the sub-report queries that apply to p.Type concurrently.
func (s *ReportService) Build(ctx context.Context, p model.ReportParams) (*model.Report, error) {
	now := s.now()
	since := p.Since(now)
	report := &model.Report{Type: p.Type, PeriodDays: p.Days, GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sum, err := s.reportRepo.GetSummary(gctx, p, since)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		report.Summary = *sum
		return nil
	})

	if p.Type.IncludesBreakdowns() {
		g.Go(func() error {
			rows, err := s.reportRepo.GetByClass(gctx, p, since)
			if err != nil {
				return fmt.Errorf("by class: %w", err)
			}
			report.ByClass = rows
			return nil
		})
		g.Go(func() error {
			rows, err := s.reportRepo.GetBySubject(gctx, p, since)
			if err != nil {
				return fmt.Errorf("by subject: %w", err)
			}
			report.BySubject = rows
			return nil
		})
	}

	if p.Type.IncludesActivities() {
		g.Go(func() error {
			rows, err := s.reportRepo.GetRecentActivities(gctx, p, since)
			if err != nil {
				return fmt.Errorf("recent activities: %w", err)
			}
			report.RecentActivities = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// Export builds every section regardless of p.Type and renders it.
func (s *ReportService) Export(ctx context.Context, p model.ReportParams, format model.ExportFormat) (*Document, error) {
	p.Type = model.ReportGeneral
	report, err := s.Build(ctx, p)
	if err != nil {
		return nil, err
	}

	data, err := export.Render(format, report)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	s.log.Info().
		Int("school_id", p.SchoolID).
		Str("format", string(format)).
		Int("bytes", len(data)).
		Msg("Report exported")

	return &Document{
		Data:        data,
		ContentType: export.ContentType(format),
		Filename:    export.Filename(format, report.GeneratedAt),
	}, nil
}
