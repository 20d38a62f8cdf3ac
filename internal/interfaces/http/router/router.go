package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/logger"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/interfaces/http/handler"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/interfaces/http/middleware"
)

// maxRequestBody bounds request bodies; no endpoint takes a payload today
const maxRequestBody = 1 << 20 // 1MB

// Config holds the handlers wired into the router
type Config struct {
	System  *handler.SystemHandler
	Routing *handler.RoutingHandler
	Logger  *zap.Logger
	// Env selects the gin mode; anything but "development" runs release mode
	Env string
}

// New builds the gin engine with middleware and all routes registered
func New(cfg Config) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.BodyLimit(maxRequestBody),
	)

	// Unversioned endpoints for load balancer checks
	engine.GET("/health", cfg.System.Health)
	engine.GET("/ping", cfg.System.Ping)

	api := engine.Group("/api/v1")
	{
		system := api.Group("/system")
		{
			system.GET("/info", cfg.System.GetSystemInfo)
			system.GET("/ping", cfg.System.Ping)
		}

		routing := api.Group("/routing")
		{
			routing.POST("/process", cfg.Routing.ProcessOrders)
			routing.POST("/refresh", cfg.Routing.RefreshPlacedOrders)
		}
	}

	return engine
}
