package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"picdesc/internal/handler"
	"picdesc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	uiH *handler.UIHandler,
	conversionH *handler.ConversionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Upload UI
	r.GET("/", uiH.Index)
	r.POST("/convert", uiH.Convert)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	conversions := v1.Group("/conversions")
	conversions.POST("", conversionH.Create)
	conversions.GET("", conversionH.List)
	conversions.GET("/:id", conversionH.GetByID)
	conversions.GET("/:id/download", conversionH.Download)

	return r
}
