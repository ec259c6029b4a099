package business

import (
	"context"
	"errors"
	"strconv"
	"time"

	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

var errNotApplied = pkgerrors.NewInternalError("No moderation method applied the change")

// moderationStep is one way of applying a ban or unban.
// Untyped errors of a fallible step decline it and the next step runs.
type moderationStep struct {
	method   entities.ModerationMethod
	fallible bool
	apply    func(ctx context.Context) (bool, error)
}

// BanUser bans a member through the bot, falling back to the caller's session
func (uc *UseCase) BanUser(ctx context.Context, userID, channelID, username string) (*entities.ModerationResult, error) {
	start := time.Now()
	result, err := uc.moderate(ctx, entities.ActionBan, userID, channelID, username)
	uc.observe("ban_user", start, err)
	return result, err
}

// UnbanUser lifts a ban through the bot, falling back to the caller's session
func (uc *UseCase) UnbanUser(ctx context.Context, userID, channelID, username string) (*entities.ModerationResult, error) {
	start := time.Now()
	result, err := uc.moderate(ctx, entities.ActionUnban, userID, channelID, username)
	uc.observe("unban_user", start, err)
	return result, err
}

func (uc *UseCase) moderate(
	ctx context.Context,
	action entities.ModerationAction,
	userID, channelID, username string,
) (*entities.ModerationResult, error) {
	failurePrefix, eventType := "Failed to ban user from channel", entities.EventUserBanned
	if action == entities.ActionUnban {
		failurePrefix, eventType = "Failed to unban user from channel", entities.EventUserUnbanned
	}

	var result *entities.ModerationResult
	channel, member, err := uc.applyToMember(ctx, userID, channelID, username, true,
		func(ctx context.Context, s deps.RemoteSession, remote *entities.RemoteChannel, target *entities.RemoteUser) error {
			var err error
			result, err = uc.runStrategy(ctx, action, uc.moderationSteps(action, s, remote, target))
			return err
		})
	if err != nil {
		return nil, upstream(failurePrefix, err)
	}

	if !result.Applied() {
		return nil, errNotApplied
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("channel_id", channel.ID).
		Str("member", member).
		Str("action", string(action)).
		Str("method", string(result.AppliedBy)).
		Msg("moderation applied")

	event := channelEvent(eventType, channel)
	event.Username = member
	event.Method = result.AppliedBy
	uc.publish(ctx, event)

	return result, nil
}

// moderationSteps orders the Bot API before the caller's own session
func (uc *UseCase) moderationSteps(
	action entities.ModerationAction,
	s deps.RemoteSession,
	channel *entities.RemoteChannel,
	target *entities.RemoteUser,
) []moderationStep {
	chatID := channelentities.BotAPIChatID(strconv.FormatInt(channel.ID, 10))

	botCall, sessionCall := uc.bot.BanChatMember, s.BanUser
	if action == entities.ActionUnban {
		botCall, sessionCall = uc.bot.UnbanChatMember, s.UnbanUser
	}

	return []moderationStep{
		{
			method:   entities.MethodBotAPI,
			fallible: true,
			apply: func(ctx context.Context) (bool, error) {
				ok, err := botCall(ctx, chatID, target.ID)
				if errors.Is(err, telegramerrors.ErrBotNotConfigured) {
					return false, telegramerrors.ErrBotTokenMissing
				}
				return ok, err
			},
		},
		{
			method: entities.MethodSession,
			apply: func(ctx context.Context) (bool, error) {
				if err := sessionCall(ctx, channel, target); err != nil {
					return false, err
				}
				return true, nil
			},
		},
	}
}

// runStrategy applies steps in order until one applies the change or fails
func (uc *UseCase) runStrategy(
	ctx context.Context,
	action entities.ModerationAction,
	steps []moderationStep,
) (*entities.ModerationResult, error) {
	result := &entities.ModerationResult{Action: action}

	for _, step := range steps {
		applied, err := step.apply(ctx)

		outcome := entities.OutcomeApplied
		switch {
		case err != nil && (!step.fallible || pkgerrors.IsTyped(err)):
			outcome = entities.OutcomeFailed
		case err != nil || !applied:
			outcome = entities.OutcomeDeclined
		}

		result.Steps = append(result.Steps, entities.StepResult{
			Method:  step.method,
			Outcome: outcome,
			Err:     err,
		})
		uc.metrics.RecordModerationStep(string(action), string(step.method), string(outcome))

		switch outcome {
		case entities.OutcomeApplied:
			result.AppliedBy = step.method
			return result, nil
		case entities.OutcomeFailed:
			return result, err
		}

		uc.logger.Warn().Err(err).
			Str("action", string(action)).
			Str("method", string(step.method)).
			Msg("moderation step declined, falling back")
	}

	return result, nil
}
