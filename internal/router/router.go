package router

import (
	"github.com/gin-gonic/gin"

	"kosh/internal/handler"
	"kosh/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	ingestH *handler.IngestHandler,
	ledgerH *handler.LedgerHandler,
	healthH *handler.HealthHandler,
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

	// Ingestion routes, one per input modality
	ingest := v1.Group("/ingest")
	ingest.POST("/receipt", ingestH.Receipt)
	ingest.POST("/voice", ingestH.Voice)
	ingest.POST("/qr", ingestH.QR)

	// Ledger routes
	ledger := v1.Group("/ledger")
	ledger.GET("", ledgerH.List)
	ledger.GET("/export", ledgerH.Export)
	ledger.DELETE("/:id", ledgerH.Delete)

	return r
}
