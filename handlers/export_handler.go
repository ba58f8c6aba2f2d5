package handlers

import (
	"fmt"
	"net/http"

	"factcheck-backend/models"
	"factcheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportHandler handles HTTP requests for claim-history exports
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ExportRequest represents the request body for exporting claim history
type ExportRequest struct {
	Format string `json:"format"`
	Limit  int    `json:"limit"`
}

// Export handles POST /export
func (h *ExportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	result, err := h.exports.Export(c.Request.Context(), service.ExportRequest{
		Format: models.ReportFormat(req.Format),
		Limit:  req.Limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result.Report)
}

// GetExport handles GET /export/:id
func (h *ExportHandler) GetExport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REPORT_ID", "Invalid report id format")
		return
	}

	report, err := h.exports.GetReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DownloadExport handles GET /export/:id/file
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REPORT_ID", "Invalid report id format")
		return
	}

	report, reader, err := h.exports.OpenReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer reader.Close()

	contentType := "application/json"
	if report.Format == models.ReportFormatCSV {
		contentType = "text/csv"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%s.%s", report.ID, report.Format),
	})
}
