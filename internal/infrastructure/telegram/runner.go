package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/thecurioussailor/telegramAPI/config"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
)

// SessionRunner builds a short-lived MTProto client per call from a stored session.
// Clients are never cached; the limiter is shared by all of them.
type SessionRunner struct {
	apiID    int
	apiHash  string
	timeout  time.Duration
	pageSize int
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

// NewSessionRunner creates a session runner from Telegram config
func NewSessionRunner(cfg *config.TelegramConfig, logger zerolog.Logger) *SessionRunner {
	return &SessionRunner{
		apiID:    cfg.APIID,
		apiHash:  cfg.APIHash,
		timeout:  cfg.RequestTimeout,
		pageSize: cfg.DialogPageSize,
		limiter:  rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RateLimit)), cfg.RateLimit),
		logger:   logger.With().Str("component", "mtproto_runner").Logger(),
	}
}

// Run connects with the given session, calls fn and returns the resulting session
func (r *SessionRunner) Run(
	ctx context.Context,
	blob []byte,
	fn func(ctx context.Context, s deps.RemoteSession) error,
) ([]byte, error) {
	storage := &session.StorageMemory{}
	if len(blob) > 0 {
		if err := storage.StoreSession(ctx, blob); err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}

	client := telegram.NewClient(r.apiID, r.apiHash, telegram.Options{
		SessionStorage: storage,
		NoUpdates:      true,
	})

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := client.Run(runCtx, func(ctx context.Context) error {
		return fn(ctx, &remoteSession{
			client:   client,
			api:      client.API(),
			limiter:  r.limiter,
			pageSize: r.pageSize,
			logger:   r.logger,
		})
	})
	if err != nil {
		r.logger.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("telegram session finished with error")
		return nil, err
	}

	data, err := storage.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dump session: %w", err)
	}

	r.logger.Debug().Dur("elapsed", time.Since(start)).Msg("telegram session finished")
	return data, nil
}
