// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

// Package service implements the conversation controller: the state machine
// that turns inbound chat events into vault operations. It owns the
// add/search/remove/edit flows and delegates persistence to the store
// package, secrecy to the crypto package, and delivery to a Responder.
package service

import (
	"context"
	"strings"

	"github.com/arianlotfi/crypto-locker/internal/crypto"
	"github.com/arianlotfi/crypto-locker/internal/i18n"
	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/session"
	"github.com/arianlotfi/crypto-locker/internal/store"
)

// Controller orchestrates all conversation flows for the single authorized
// operator. Safe for concurrent use: per-user conversation state lives in
// the session table, everything else is immutable after construction.
type Controller struct {
	users     store.UserRepository
	creds     store.CredentialRepository
	cipher    crypto.Cipher
	states    *session.Table
	responder Responder
	adminID   int64
	logger    *logger.Logger
}

// NewController wires the controller from its collaborators. adminID is the
// only Telegram identity allowed past any entry point.
func NewController(
	users store.UserRepository,
	creds store.CredentialRepository,
	cipher crypto.Cipher,
	states *session.Table,
	responder Responder,
	adminID int64,
	log *logger.Logger,
) *Controller {
	log.Debug().Int64("admin_id", adminID).Msg("creating conversation controller")
	return &Controller{
		users:     users,
		creds:     creds,
		cipher:    cipher,
		states:    states,
		responder: responder,
		adminID:   adminID,
		logger:    log,
	}
}

// authorized reports whether the sender is the operator. Every entry point
// calls this before touching state or store; unauthorized senders get one
// fixed response and cause no side effects.
func (c *Controller) authorized(userID int64) bool {
	return userID == c.adminID
}

// rejectUnauthorized sends the fixed not-admin response. Always in the
// default language: the sender has no user row and never will.
func (c *Controller) rejectUnauthorized(ctx context.Context, ev Event) Outcome {
	logger.FromContext(ctx).Warn().
		Int64("user_id", ev.UserID).
		Msg("rejected event from non-operator")

	if err := c.responder.SendMessage(ctx, ev.ChatID, Message{Text: i18n.T(i18n.DefaultLang, "NOT_ADMIN")}); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to send not-authorized response")
	}
	return OutcomeNotAuthorized
}

// lang resolves the operator's preferred language. Storage trouble here is
// not worth failing the whole event over; fall back to English.
func (c *Controller) lang(ctx context.Context, userID int64) string {
	lang, err := c.users.GetLang(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("failed obtaining user language")
		return i18n.DefaultLang
	}
	return lang
}

// replyGeneric collapses an internal failure into the single generic
// user-facing error message.
func (c *Controller) replyGeneric(ctx context.Context, ev Event, lang string) {
	if err := c.responder.SendMessage(ctx, ev.ChatID, Message{Text: i18n.T(lang, "ERR_GENERIC")}); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to send generic error response")
	}
}

// editGeneric is replyGeneric for callback handlers, rewriting the tapped
// message instead of sending a new one.
func (c *Controller) editGeneric(ctx context.Context, ev Event, lang string) {
	if err := c.responder.EditMessage(ctx, ev.ChatID, ev.MessageID, Message{Text: i18n.T(lang, "ERR_GENERIC")}); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to edit generic error response")
	}
}

// OnStart handles the /start command: register the user, greet, show the
// menu.
func (c *Controller) OnStart(ctx context.Context, ev Event) Outcome {
	log := logger.FromContext(ctx)

	if !c.authorized(ev.UserID) {
		return c.rejectUnauthorized(ctx, ev)
	}

	if err := c.users.EnsureUser(ctx, ev.UserID); err != nil {
		log.Err(err).Msg("failed to ensure user on start")
		c.replyGeneric(ctx, ev, i18n.DefaultLang)
		return OutcomeError
	}

	lang := c.lang(ctx, ev.UserID)
	text := i18n.T(lang, "WELCOME") + "\n\n" + i18n.T(lang, "MENU_HINT")
	if err := c.responder.SendMessage(ctx, ev.ChatID, Message{Text: text, Keyboard: mainMenu(lang)}); err != nil {
		log.Err(err).Msg("failed to send start menu")
		return OutcomeError
	}

	log.Info().Int64("user_id", ev.UserID).Msg("sent start menu")
	return OutcomeOK
}

// OnMenu handles the /menu command: re-show the main menu.
func (c *Controller) OnMenu(ctx context.Context, ev Event) Outcome {
	log := logger.FromContext(ctx)

	if !c.authorized(ev.UserID) {
		return c.rejectUnauthorized(ctx, ev)
	}

	if err := c.users.EnsureUser(ctx, ev.UserID); err != nil {
		log.Err(err).Msg("failed to ensure user on menu")
		c.replyGeneric(ctx, ev, i18n.DefaultLang)
		return OutcomeError
	}

	lang := c.lang(ctx, ev.UserID)
	if err := c.responder.SendMessage(ctx, ev.ChatID, Message{Text: i18n.T(lang, "MENU_HINT"), Keyboard: mainMenu(lang)}); err != nil {
		log.Err(err).Msg("failed to send menu")
		return OutcomeError
	}
	return OutcomeOK
}

// OnLanguageChange handles "/lang <code>". The code is matched
// case-insensitively; an unknown code re-prompts with usage instead of
// erroring.
func (c *Controller) OnLanguageChange(ctx context.Context, ev Event, langCode string) Outcome {
	log := logger.FromContext(ctx)

	if !c.authorized(ev.UserID) {
		return c.rejectUnauthorized(ctx, ev)
	}

	langCode = strings.ToLower(strings.TrimSpace(langCode))

	if err := c.users.EnsureUser(ctx, ev.UserID); err != nil {
		log.Err(err).Msg("failed to ensure user on language change")
		c.replyGeneric(ctx, ev, i18n.DefaultLang)
		return OutcomeError
	}

	if !i18n.Supported(langCode) {
		current := c.lang(ctx, ev.UserID)
		if err := c.responder.SendMessage(ctx, ev.ChatID, Message{Text: i18n.T(current, "LANG_USAGE")}); err != nil {
			log.Err(err).Msg("failed to send language usage hint")
		}
		return OutcomeValidationRejected
	}

	if err := c.users.SetLang(ctx, ev.UserID, langCode); err != nil {
		log.Err(err).Msg("failed to persist language change")
		c.replyGeneric(ctx, ev, i18n.DefaultLang)
		return OutcomeError
	}

	if err := c.responder.SendMessage(ctx, ev.ChatID, Message{Text: i18n.T(langCode, "LANG_CHANGED"), Keyboard: mainMenu(langCode)}); err != nil {
		log.Err(err).Msg("failed to confirm language change")
		return OutcomeError
	}

	log.Info().Str("lang", langCode).Msg("user changed language")
	return OutcomeOK
}

// OnError is the dispatcher's last resort for panics and transport-level
// failures: tell the operator something broke, in general terms only.
func (c *Controller) OnError(ctx context.Context, ev Event) {
	if !c.authorized(ev.UserID) {
		return
	}
	c.replyGeneric(ctx, ev, c.lang(ctx, ev.UserID))
}
