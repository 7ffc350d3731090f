package bootstrap

import (
	"strings"

	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/jwt"
	"storefront-core/internal/usecase"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		NewTokenValidator,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		panic("JWT_SECRET must not be blank")
	}
	return jwt.NewService(cfg.JWT.Secret)
}

func NewTokenValidator(svc *jwt.Service, cfg config.Config) usecase.TokenValidator {
	return usecase.NewTokenValidator(svc, cfg.JWT.AdminRole)
}
