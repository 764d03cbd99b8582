package http

import (
	"github.com/gin-gonic/gin"

	"github.com/commutewise/backend/config"
)

// SetupFuelRouter creates and configures the Gin router for the fuel
// price service
func SetupFuelRouter(cfg *config.Config, handler *FuelHandler) *gin.Engine {
	router := newRouter(cfg)

	router.GET("/health", handler.HealthCheck)
	router.GET("/fuel-price/:lat/:long", handler.GetFuelPrice)

	return router
}

// SetupComparisonRouter creates and configures the Gin router for the
// comparison service
func SetupComparisonRouter(cfg *config.Config, handler *ComparisonHandler) *gin.Engine {
	router := newRouter(cfg)

	router.GET("/", handler.Readiness)
	router.GET("/health", handler.HealthCheck)
	router.GET("/:patient_id/:counselor_id", handler.Compare)

	return router
}

func newRouter(cfg *config.Config) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	return router
}
