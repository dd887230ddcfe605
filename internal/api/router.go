package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with logging, recovery and CORS for the web UI.
func NewRouter(handler *Handler, allowOrigins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(allowOrigins)))

	handler.RegisterRoutes(router)
	return router
}

func corsConfig(allowOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	config.MaxAge = 12 * time.Hour

	if len(allowOrigins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	for _, origin := range allowOrigins {
		if origin == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	config.AllowOrigins = allowOrigins
	return config
}

// requestLogger logs method, route, status and latency. Bodies are never
// logged since they carry personal details.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
