package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gstbill/docs" // registers the OpenAPI document
	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Company  *handler.CompanyHandler
	Customer *handler.CustomerHandler
	Invoice  *handler.InvoiceHandler
	Transfer *handler.TransferHandler
	Words    *handler.WordsHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limit := middleware.NewRateLimiter(cfg.RateLimit).Middleware()

	v1 := r.Group("/api/v1")
	v1.GET("/company", h.Company.Get)
	v1.GET("/words", h.Words.Convert)

	customers := v1.Group("/customers")
	customers.GET("", h.Customer.List)
	customers.GET("/:gstin", h.Customer.Get)
	customers.PUT("/:gstin", limit, h.Customer.Save)
	customers.DELETE("/:gstin", limit, h.Customer.Delete)

	invoices := v1.Group("/invoices")
	invoices.GET("", h.Invoice.List)
	invoices.POST("", limit, h.Invoice.Create)
	invoices.POST("/preview", h.Invoice.Preview)
	invoices.GET("/next-number", h.Invoice.NextNumber)
	invoices.GET("/export/csv", h.Invoice.ExportCSV)
	invoices.GET("/export/xlsx", h.Invoice.ExportXLSX)
	invoices.GET("/:id", h.Invoice.Get)
	invoices.DELETE("/:id", limit, h.Invoice.Delete)

	data := v1.Group("/data")
	data.GET("/export", h.Transfer.Export)
	data.POST("/import", limit, h.Transfer.Import)

	return r
}
