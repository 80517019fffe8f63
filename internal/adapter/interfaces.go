// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

// Package adapter is the Telegram transport layer of the bot.
//
// The primary abstraction is [BotAPI], a thin typed surface over the handful
// of Bot API methods the bot actually calls. The package ships a resty-based
// implementation ([NewTelegramClient]), a [service.Responder] adapter that
// translates transport-agnostic messages into Bot API requests, and the
// [Dispatcher] that long-polls for updates and routes them into the
// conversation controller.
//
// Error values defined in errors.go are mapped from Bot API error responses
// by the client's call method so that callers can use [errors.Is] without
// inspecting response bodies.
package adapter

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/botapi_mock.go -package=mock

// BotAPI is the subset of the Telegram Bot API the bot depends on.
// Implementations are responsible for serialisation, the envelope protocol,
// and mapping API-level failures to the sentinel errors of this package.
type BotAPI interface {
	// GetUpdates long-polls for updates with update_id >= offset, blocking
	// up to timeout on the server side before returning an empty batch.
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)

	// SendMessage delivers a new message and returns the created message.
	SendMessage(ctx context.Context, req SendMessageRequest) (ChatMessage, error)

	// EditMessageText rewrites the text and keyboard of an existing message.
	EditMessageText(ctx context.Context, req EditMessageRequest) error

	// DeleteMessage removes a message from a chat.
	DeleteMessage(ctx context.Context, chatID, messageID int64) error

	// AnswerCallbackQuery acknowledges a tapped inline button so the client
	// stops showing its progress spinner.
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error
}
