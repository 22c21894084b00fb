package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"freight-matching-service/internal/api/handlers"
	"freight-matching-service/internal/platform/logger"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Processor         *services.OrderProcessor
	Auditor           *services.FleetComplianceValidator
	Snapshots         ports.SnapshotRepository // optional
	BaselineDailyLoss float64
	RequestTimeout    time.Duration
	MetricsPath       string
	MetricsHandler    http.Handler // nil disables the metrics endpoint
	Log               logger.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns the gin engine.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.NopLogger{}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(loggingMiddleware(d.Log))

	router.GET("/health", handlers.Health)
	if d.MetricsHandler != nil {
		router.GET(d.MetricsPath, gin.WrapH(d.MetricsHandler))
	}

	orderHandler := &handlers.OrderHandler{Processor: d.Processor, Log: d.Log}
	complianceHandler := &handlers.ComplianceHandler{
		Auditor:           d.Auditor,
		Snapshots:         d.Snapshots,
		BaselineDailyLoss: d.BaselineDailyLoss,
		Log:               d.Log,
	}

	v1 := router.Group("/v1", timeout(d.RequestTimeout))
	{
		v1.POST("/orders/validate", orderHandler.Validate)
		v1.POST("/orders/batch", orderHandler.Batch)
		v1.POST("/compliance", complianceHandler.Audit)
		v1.GET("/compliance", complianceHandler.AuditStored)
	}

	return router
}
