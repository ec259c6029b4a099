package token

import "go.uber.org/fx"

// Module provides the token service for fx DI
var Module = fx.Module("token",
	fx.Provide(NewService),
)
