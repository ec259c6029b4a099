package botapi

import "go.uber.org/fx"

// Module provides the Bot API moderator
var Module = fx.Module("botapi",
	fx.Provide(NewModerator),
)
