package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolmol/backend/config"
)

// SetupRouter creates and configures the Gin router. mcpHandler serves the
// MCP JSON-RPC endpoint and may be nil when the MCP server is disabled.
func SetupRouter(cfg *config.Config, handler *Handler, mcpHandler http.Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// MCP endpoint: POST carries JSON-RPC, GET answers readiness probes
	if mcpHandler != nil {
		router.POST("/mcp", gin.WrapH(mcpHandler))
		router.GET("/mcp", handler.MCPReady)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("/search", handler.SearchProducts)
			products.GET("/search", handler.SearchProductsGET)
			products.POST("/compare", handler.CompareProducts)
		}

		v1.GET("/weather", handler.GetWeather)
	}

	return router
}
