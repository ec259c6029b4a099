package user

import (
	"github.com/thecurioussailor/telegramAPI/internal/domain/user/repository/postgres"
	"go.uber.org/fx"
)

// Module provides user storage for fx DI
var Module = fx.Module("user",
	fx.Provide(postgres.NewRepository),
)
