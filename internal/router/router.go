package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahul-1611/AEROCARBON/internal/handler"
	"github.com/Rahul-1611/AEROCARBON/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	metricsH *handler.MetricsHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("/upload", invoiceH.Upload)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetResult)
	invoices.GET("/:id/status", invoiceH.GetStatus)

	v1.GET("/metrics", metricsH.Summary)
	v1.GET("/reports/export", metricsH.Export)

	return r
}
