package channel

import (
	"github.com/thecurioussailor/telegramAPI/internal/domain/channel/repository/postgres"
	"go.uber.org/fx"
)

// Module provides channel storage for fx DI
var Module = fx.Module("channel",
	fx.Provide(postgres.NewRepository),
)
