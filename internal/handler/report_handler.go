package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/metrics"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/service"
)

// ReportService is the part of *service.ReportService the handler uses.
type ReportService interface {
	Build(ctx context.Context, p model.ReportParams) (*model.Report, error)
	Export(ctx context.Context, p model.ReportParams, format model.ExportFormat) (*service.Document, error)
}

// ReportHandler serves reports as JSON or as downloadable documents.
type ReportHandler struct {
	reportService ReportService
	log           zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		log:           log.With().Str("component", "report_handler").Logger(),
	}
}

func reportQuery(c *gin.Context) service.ReportQuery {
	return service.ReportQuery{
		Period:  c.Query("periodo"),
		ClassID: c.Query("serie_id"),
		Subject: c.Query("materia"),
		Type:    c.Query("tipo_relatorio"),
		Format:  c.Query("formato"),
	}
}

// GetReport godoc
// GET /relatorios?periodo=&serie_id=&materia=&tipo_relatorio=
// Builds the sections selected by tipo_relatorio.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	params, err := service.ParseReportParams(id, reportQuery(c))
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	report, err := h.reportService.Build(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// Export godoc
// GET /relatorios/exportar?periodo=&serie_id=&materia=&formato=pdf|excel
// Renders every section as a PDF or xlsx attachment.
func (h *ReportHandler) Export(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	q := reportQuery(c)
	q.Type = ""
	params, err := service.ParseReportParams(id, q)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}
	format, err := service.ParseExportFormat(q.Format)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	doc, err := h.reportService.Export(c.Request.Context(), params, format)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	metrics.ReportExports.WithLabelValues(string(format)).Inc()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
