package http

import (
	"github.com/gin-gonic/gin"
	"github.com/smartkart/kiosk/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	kiosk := router.Group("/kiosk")
	{
		kiosk.GET("/screen", handler.GetScreen)

		catalog := kiosk.Group("/catalog")
		{
			catalog.POST("/reload", handler.ReloadCatalog)
			catalog.POST("/filter", handler.SetFilter)
		}

		location := kiosk.Group("/location")
		{
			location.POST("/add", handler.AddFromLocation)
			location.POST("/close", handler.CloseLocation)
			location.POST("/:id", handler.ShowLocation)
		}

		kiosk.POST("/budget", handler.SetBudget)
		kiosk.POST("/lookup", handler.Lookup)

		cart := kiosk.Group("/cart")
		{
			cart.POST("/add", handler.AddToCart)
			cart.DELETE("", handler.ClearCart)
			cart.DELETE("/:index", handler.RemoveFromCart)
		}

		kiosk.POST("/checkout", handler.Checkout)
		kiosk.GET("/invoice", handler.GetInvoice)
		kiosk.POST("/dialog/ack", handler.AcknowledgeDialog)
	}

	return router
}
