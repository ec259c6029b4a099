package telegram

import "go.uber.org/fx"

// Module provides the MTProto session runner
var Module = fx.Module("telegram",
	fx.Provide(NewSessionRunner),
)
