package middleware

import (
	"log/slog"

	"storefront-core/internal/pkg/config"
	"storefront-core/internal/usecase/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the storefront frontend call the API and read the request id of each answer.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	expose := append([]string{shared.RequestIDHeader}, cfg.ExposeHeaders...)
	allow := append([]string{shared.RequestIDHeader}, cfg.AllowHeaders...)

	logger.Info("CORS middleware initialized", slog.Any("allow_origins", cfg.AllowOrigins))
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allow,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
