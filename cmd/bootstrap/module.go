package bootstrap

import (
	"storefront-core/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.InfraModule,
	components.CoreModule,
	components.HandlerModule,
)
