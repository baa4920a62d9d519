package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-1611/AEROCARBON/internal/port"
	"github.com/Rahul-1611/AEROCARBON/internal/report"
)

// MetricsHandler serves aggregate processing metrics and report exports.
type MetricsHandler struct {
	metrics  port.MetricsRepository
	exporter *report.Exporter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metrics port.MetricsRepository, exporter *report.Exporter) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, exporter: exporter}
}

// Summary handles GET /api/v1/metrics
func (h *MetricsHandler) Summary(c *gin.Context) {
	summary, err := h.metrics.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Export handles GET /api/v1/reports/export
// Streams an xlsx workbook of all finalized results.
func (h *MetricsHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("emissions_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.exporter.WriteXLSX(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		log.Printf("metricsHandler.Export: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
}
