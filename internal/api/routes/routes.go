package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-recomendacao/internal/api/handlers"
	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	middlewares "github.com/prefeitura-rio/app-recomendacao/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies agrupa o que o router precisa para montar os handlers
type Dependencies struct {
	Engine   handlers.Recommender
	Database handlers.Pinger
	// Cache é opcional (nil quando o trending usa cache em memória)
	Cache  handlers.Pinger
	Logger *logger.Logger
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestTiming())
	r.Use(middlewares.AccessLog(deps.Logger))
	r.Use(corsMiddleware())

	recommendationHandler := handlers.NewRecommendationHandler(deps.Engine, cfg.Recommend, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.Database, deps.Cache)

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middlewares.ExtractUserContext())
	api.Use(middlewares.JWTAuthMiddleware())
	{
		api.GET("/recommendations", recommendationHandler.GetRecommendations)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
