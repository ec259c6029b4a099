package metrics

import "go.uber.org/fx"

// Module shares the process-wide collectors; registering twice would panic.
var Module = fx.Module("metrics",
	fx.Provide(GetDefaultMetrics),
)
