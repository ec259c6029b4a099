package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/thecurioussailor/telegramAPI/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
)

// NewLogger tags every entry with the service name.
func NewLogger(cfg *config.LoggingConfig, serviceCfg *config.ServiceConfig) zerolog.Logger {
	return New(cfg.Level, cfg.Format, os.Stdout).With().Str("service", serviceCfg.Name).Logger()
}

// NewFxLogger routes fx lifecycle events through zerolog.
func NewFxLogger(logger zerolog.Logger) fxevent.Logger {
	return &fxLogger{logger: logger.With().Str("component", "fx").Logger()}
}

type fxLogger struct {
	logger zerolog.Logger
}

func (l *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("OnStart hook failed")
			return
		}
		l.logger.Debug().Str("callee", e.FunctionName).Dur("runtime", e.Runtime).Msg("OnStart hook executed")
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("OnStop hook failed")
			return
		}
		l.logger.Debug().Str("callee", e.FunctionName).Dur("runtime", e.Runtime).Msg("OnStop hook executed")
	case *fxevent.Provided:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("constructor", e.ConstructorName).Msg("provide failed")
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("function", e.FunctionName).Msg("invoke failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Msg("start failed")
			return
		}
		l.logger.Info().Msg("application started")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Msg("stop failed")
		}
	case *fxevent.Stopping:
		l.logger.Info().Str("signal", e.Signal.String()).Msg("received signal")
	case *fxevent.RollingBack:
		l.logger.Error().Err(e.StartErr).Msg("start failed, rolling back")
	}
}
