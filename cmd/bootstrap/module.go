package bootstrap

import (
	"playpoint/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.EngineModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
	RelayModule,
)
