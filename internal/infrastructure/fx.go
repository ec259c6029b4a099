package infrastructure

import (
	"go.uber.org/fx"

	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/botapi"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/database"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/http"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/kafka"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/logger"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/telegram"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/token"
)

// Module combines all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	database.Module,
	token.Module,
	telegram.Module,
	botapi.Module,
	kafka.Module,
	http.Module,
)
