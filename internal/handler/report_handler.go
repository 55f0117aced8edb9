package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/pkg/response"
)

type reportService interface {
	Generate(ctx context.Context, req dto.ReportRequest, format string) (*service.Document, error)
}

type certificateService interface {
	Generate(ctx context.Context, req dto.CertificateRequest) (*service.Document, error)
}

// ReportHandler exposes document generation endpoints.
type ReportHandler struct {
	reports      reportService
	certificates certificateService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService, certificates certificateService) *ReportHandler {
	return &ReportHandler{reports: reports, certificates: certificates}
}

// Generate godoc
// @Summary Render a report document
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Param payload body dto.ReportRequest true "reportType and data"
// @Param format query string false "pdf (default) or csv"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /generate-report [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	var req dto.ReportRequest
	if !bindJSON(c, &req, "invalid report request") {
		return
	}
	doc, err := h.reports.Generate(c.Request.Context(), req, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Body)
}

// Certificate godoc
// @Summary Render a badge certificate
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Param payload body dto.CertificateRequest true "Certificate data"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /generate-certificate [post]
func (h *ReportHandler) Certificate(c *gin.Context) {
	var req dto.CertificateRequest
	if !bindJSON(c, &req, "Missing data") {
		return
	}
	doc, err := h.certificates.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Body)
}
