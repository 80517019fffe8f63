package adapter

import (
	"context"

	"github.com/arianlotfi/crypto-locker/internal/service"
)

// keyboard wire shapes of the Bot API reply_markup field
type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type replyKeyboardMarkup struct {
	Keyboard       [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard"`
}

type keyboardButton struct {
	Text string `json:"text"`
}

// markupFor converts the controller's keyboard descriptor into the matching
// Bot API reply_markup value. A nil keyboard means no markup at all.
func markupFor(kb *service.Keyboard) any {
	if kb == nil {
		return nil
	}

	if kb.Inline {
		rows := make([][]inlineKeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]inlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, inlineKeyboardButton{Text: b.Label, CallbackData: b.Data})
			}
			rows = append(rows, buttons)
		}
		return inlineKeyboardMarkup{InlineKeyboard: rows}
	}

	rows := make([][]keyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]keyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, keyboardButton{Text: b.Label})
		}
		rows = append(rows, buttons)
	}
	return replyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func parseModeFor(msg service.Message) string {
	if msg.HTML {
		return "HTML"
	}
	return ""
}

type telegramResponder struct {
	api BotAPI
}

// NewResponder adapts a BotAPI client to the controller's Responder
// interface.
func NewResponder(api BotAPI) service.Responder {
	return &telegramResponder{api: api}
}

func (r *telegramResponder) SendMessage(ctx context.Context, chatID int64, msg service.Message) error {
	_, err := r.api.SendMessage(ctx, SendMessageRequest{
		ChatID:      chatID,
		Text:        msg.Text,
		ParseMode:   parseModeFor(msg),
		ReplyMarkup: markupFor(msg.Keyboard),
	})
	return err
}

func (r *telegramResponder) EditMessage(ctx context.Context, chatID, messageID int64, msg service.Message) error {
	return r.api.EditMessageText(ctx, EditMessageRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        msg.Text,
		ParseMode:   parseModeFor(msg),
		ReplyMarkup: markupFor(msg.Keyboard),
	})
}

func (r *telegramResponder) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return r.api.DeleteMessage(ctx, chatID, messageID)
}
