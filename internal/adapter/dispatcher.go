// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/service"
)

// errorBackoff is how long the poll loop sleeps after a failed getUpdates
// before retrying, so a Telegram outage does not spin the loop.
const errorBackoff = 3 * time.Second

// Dispatcher long-polls the Bot API and routes each update into the
// conversation controller. Updates are handled concurrently, one goroutine
// per update, each with its own trace-scoped logger. A panic in a handler is
// contained to that update.
type Dispatcher struct {
	api         BotAPI
	controller  *service.Controller
	pollTimeout time.Duration
	logger      *logger.Logger
}

// NewDispatcher wires the update loop to its controller.
func NewDispatcher(api BotAPI, controller *service.Controller, pollTimeout time.Duration, log *logger.Logger) *Dispatcher {
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	return &Dispatcher{
		api:         api,
		controller:  controller,
		pollTimeout: pollTimeout,
		logger:      log,
	}
}

// Run polls for updates until ctx is cancelled. It returns ctx.Err() on
// shutdown; transient API failures are logged and retried with backoff.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info().Dur("poll_timeout", d.pollTimeout).Msg("update dispatcher started")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("update dispatcher stopped")
			return ctx.Err()
		default:
		}

		updates, err := d.api.GetUpdates(ctx, offset, d.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				d.logger.Info().Msg("update dispatcher stopped")
				return ctx.Err()
			}
			d.logger.Err(err).Msg("getUpdates failed, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(errorBackoff):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go d.handle(ctx, update)
		}
	}
}

// handle processes one update in its own goroutine. The context carries an
// update-scoped logger with a fresh trace id so every log line produced down
// the call chain is attributable to this update.
func (d *Dispatcher) handle(ctx context.Context, update Update) {
	log := &logger.Logger{Logger: d.logger.With().
		Str("trace_id", uuid.NewString()).
		Int64("update_id", update.UpdateID).
		Logger()}
	ctx = log.WithContext(ctx)

	var ev service.Event
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("recovered panic while handling update")
			d.controller.OnError(ctx, ev)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		ev = eventFromCallback(update.CallbackQuery)
		log, ctx = withSender(ctx, log, ev.UserID)
		// acknowledge first so the client spinner stops even if handling
		// takes a while
		if err := d.api.AnswerCallbackQuery(ctx, update.CallbackQuery.ID); err != nil {
			log.Err(err).Msg("failed to answer callback query")
		}
		outcome := d.controller.OnCallback(ctx, ev, update.CallbackQuery.Data)
		log.Debug().Stringer("outcome", outcome).Msg("handled callback update")

	case update.Message != nil && update.Message.From != nil:
		ev = eventFromMessage(update.Message)
		log, ctx = withSender(ctx, log, ev.UserID)
		outcome := d.route(ctx, ev)
		log.Debug().Stringer("outcome", outcome).Msg("handled message update")

	default:
		log.Debug().Msg("skipped update of unsupported kind")
	}
}

// withSender rebinds the update-scoped logger with the sender's id once it
// is known and stores the enriched logger back in the context.
func withSender(ctx context.Context, log *logger.Logger, userID int64) (*logger.Logger, context.Context) {
	log = &logger.Logger{Logger: log.With().Int64("user_id", userID).Logger()}
	return log, log.WithContext(ctx)
}

// route sends a message event to the matching controller entry point.
// Unknown slash commands fall through to OnText, which answers with the
// menu.
func (d *Dispatcher) route(ctx context.Context, ev service.Event) service.Outcome {
	text := strings.TrimSpace(ev.Text)

	switch {
	case text == "/start":
		return d.controller.OnStart(ctx, ev)
	case text == "/menu":
		return d.controller.OnMenu(ctx, ev)
	case strings.HasPrefix(text, "/lang"):
		arg := strings.TrimSpace(strings.TrimPrefix(text, "/lang"))
		return d.controller.OnLanguageChange(ctx, ev, arg)
	default:
		return d.controller.OnText(ctx, ev)
	}
}

func eventFromMessage(msg *ChatMessage) service.Event {
	return service.Event{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}
}

func eventFromCallback(cb *CallbackQuery) service.Event {
	ev := service.Event{UserID: cb.From.ID}
	if cb.Message != nil {
		ev.ChatID = cb.Message.Chat.ID
		ev.MessageID = cb.Message.MessageID
	}
	return ev
}
