// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Update is one inbound event from getUpdates. Exactly one of Message and
// CallbackQuery is set for the update kinds this bot subscribes to.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *ChatMessage   `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// ChatMessage is the Bot API message object, reduced to the fields the bot
// reads.
type ChatMessage struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// CallbackQuery is an inline-button tap.
type CallbackQuery struct {
	ID      string       `json:"id"`
	From    User         `json:"from"`
	Message *ChatMessage `json:"message,omitempty"`
	Data    string       `json:"data,omitempty"`
}

// User is the Bot API user object, reduced to the sender identity.
type User struct {
	ID int64 `json:"id"`
}

// Chat is the Bot API chat object, reduced to its identifier.
type Chat struct {
	ID int64 `json:"id"`
}

// SendMessageRequest carries the sendMessage parameters.
type SendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ParseMode   string `json:"parse_mode,omitempty"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// EditMessageRequest carries the editMessageText parameters.
type EditMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	MessageID   int64  `json:"message_id"`
	Text        string `json:"text"`
	ParseMode   string `json:"parse_mode,omitempty"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// apiResponse is the uniform Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// TelegramConfig configures the Bot API client. BaseURL exists so tests can
// point the client at a local server; production leaves it empty.
type TelegramConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

type telegramClient struct {
	client *resty.Client
}

// NewTelegramClient builds a Bot API client for the given token. The token
// becomes part of the request path, never a header, which is how the Bot API
// authenticates.
func NewTelegramClient(cfg TelegramConfig) (BotAPI, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrTokenRequired
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/bot" + cfg.Token).
		SetTimeout(cfg.Timeout)

	return &telegramClient{client: cli}, nil
}

// call posts one Bot API method and decodes the envelope. out receives the
// result field when non-nil.
func (t *telegramClient) call(ctx context.Context, method string, body, out any) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/" + method)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}

	var envelope apiResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBadResponse, method, err)
	}

	if !envelope.OK {
		if envelope.ErrorCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %s", ErrTooManyRequests, envelope.Description)
		}
		return fmt.Errorf("%w: %s: %s (code %d)", ErrTelegramAPI, method, envelope.Description, envelope.ErrorCode)
	}

	if out != nil {
		if err = json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("%w: %s result: %w", ErrBadResponse, method, err)
		}
	}
	return nil
}

func (t *telegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	req := struct {
		Offset         int64    `json:"offset,omitempty"`
		Timeout        int      `json:"timeout"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{
		Offset:         offset,
		Timeout:        int(timeout / time.Second),
		AllowedUpdates: []string{"message", "callback_query"},
	}

	var updates []Update
	if err := t.call(ctx, "getUpdates", req, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

func (t *telegramClient) SendMessage(ctx context.Context, req SendMessageRequest) (ChatMessage, error) {
	var msg ChatMessage
	if err := t.call(ctx, "sendMessage", req, &msg); err != nil {
		return ChatMessage{}, err
	}
	return msg, nil
}

func (t *telegramClient) EditMessageText(ctx context.Context, req EditMessageRequest) error {
	return t.call(ctx, "editMessageText", req, nil)
}

func (t *telegramClient) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	req := struct {
		ChatID    int64 `json:"chat_id"`
		MessageID int64 `json:"message_id"`
	}{ChatID: chatID, MessageID: messageID}

	return t.call(ctx, "deleteMessage", req, nil)
}

func (t *telegramClient) AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error {
	req := struct {
		CallbackQueryID string `json:"callback_query_id"`
	}{CallbackQueryID: callbackQueryID}

	return t.call(ctx, "answerCallbackQuery", req, nil)
}
