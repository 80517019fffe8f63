// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package service

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/arianlotfi/crypto-locker/internal/i18n"
	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/session"
	"github.com/arianlotfi/crypto-locker/internal/store"
	"github.com/arianlotfi/crypto-locker/models"
)

// OnCallback handles a tapped inline button. The payload is parsed once into
// a Callback and the handler switches over the closed action set; malformed
// payloads collapse into the generic error.
func (c *Controller) OnCallback(ctx context.Context, ev Event, payload string) Outcome {
	log := logger.FromContext(ctx)

	if !c.authorized(ev.UserID) {
		return c.rejectUnauthorized(ctx, ev)
	}

	lang := c.lang(ctx, ev.UserID)

	cb, err := ParseCallback(payload)
	if err != nil {
		log.Warn().Str("payload", payload).Msg("rejected malformed callback payload")
		c.editGeneric(ctx, ev, lang)
		return OutcomeValidationRejected
	}

	switch cb.Action {
	case CallbackShow:
		return c.handleShow(ctx, ev, cb.CredentialID, lang)
	case CallbackRemoveConfirm:
		return c.handleRemoveConfirm(ctx, ev, cb.CredentialID, lang)
	case CallbackRemoveDo:
		return c.handleRemoveDo(ctx, ev, cb.CredentialID, lang)
	case CallbackCancel:
		return c.edit(ctx, ev, Message{Text: i18n.T(lang, "MENU_HINT")})
	case CallbackEditSelect:
		return c.handleEditSelect(ctx, ev, cb.CredentialID, lang)
	case CallbackEditField:
		return c.handleEditField(ctx, ev, cb.CredentialID, cb.Field, lang)
	case CallbackClose:
		return c.handleClose(ctx, ev)
	default:
		c.editGeneric(ctx, ev, lang)
		return OutcomeError
	}
}

// edit rewrites the tapped message and folds transport failures into
// OutcomeError.
func (c *Controller) edit(ctx context.Context, ev Event, msg Message) Outcome {
	if err := c.responder.EditMessage(ctx, ev.ChatID, ev.MessageID, msg); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to edit message")
		return OutcomeError
	}
	return OutcomeOK
}

// getCredential loads the credential for the operator, translating
// not-found into an OutcomeNotFound edit. The bool reports whether the
// caller may proceed.
func (c *Controller) getCredential(ctx context.Context, ev Event, id int64, lang string) (models.Credential, Outcome, bool) {
	cred, err := c.creds.Get(ctx, id, ev.UserID)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			logger.FromContext(ctx).Warn().Int64("credential_id", id).Msg("callback referenced unknown credential")
			c.editGeneric(ctx, ev, lang)
			return models.Credential{}, OutcomeNotFound, false
		}
		logger.FromContext(ctx).Err(err).Int64("credential_id", id).Msg("failed to load credential")
		c.editGeneric(ctx, ev, lang)
		return models.Credential{}, OutcomeError, false
	}
	return cred, OutcomeOK, true
}

// handleShow decrypts both fields and rewrites the tapped message with the
// plaintext and a close button. Secrets are HTML-escaped before they enter
// the markup.
func (c *Controller) handleShow(ctx context.Context, ev Event, id int64, lang string) Outcome {
	log := logger.FromContext(ctx)

	cred, out, ok := c.getCredential(ctx, ev, id, lang)
	if !ok {
		return out
	}

	username, err := c.cipher.Decrypt(cred.Username)
	if err != nil {
		log.Err(err).Int64("credential_id", id).Msg("failed to decrypt username")
		c.editGeneric(ctx, ev, lang)
		return OutcomeError
	}
	password, err := c.cipher.Decrypt(cred.Password)
	if err != nil {
		log.Err(err).Int64("credential_id", id).Msg("failed to decrypt password")
		c.editGeneric(ctx, ev, lang)
		return OutcomeError
	}

	text := fmt.Sprintf(
		"<b>%s</b>\n<pre>%s: %s\n%s: %s</pre>",
		html.EscapeString(cred.Name),
		i18n.T(lang, "FIELD_USERNAME"), html.EscapeString(string(username)),
		i18n.T(lang, "FIELD_PASSWORD"), html.EscapeString(string(password)),
	)

	log.Info().Int64("credential_id", id).Msg("displayed credential")
	return c.edit(ctx, ev, Message{Text: text, HTML: true, Keyboard: closeKeyboard(lang)})
}

// handleRemoveConfirm gates the delete behind an explicit yes/no prompt.
func (c *Controller) handleRemoveConfirm(ctx context.Context, ev Event, id int64, lang string) Outcome {
	cred, out, ok := c.getCredential(ctx, ev, id, lang)
	if !ok {
		return out
	}

	return c.edit(ctx, ev, Message{
		Text:     i18n.T(lang, "ASK_REMOVE_CONFIRM", "name", cred.Name),
		Keyboard: confirmRemovalKeyboard(lang, id),
	})
}

// handleRemoveDo performs the confirmed delete. A record that vanished
// between confirmation and tap is treated as already removed.
func (c *Controller) handleRemoveDo(ctx context.Context, ev Event, id int64, lang string) Outcome {
	log := logger.FromContext(ctx)

	cred, out, ok := c.getCredential(ctx, ev, id, lang)
	if !ok {
		return out
	}

	deleted, err := c.creds.Delete(ctx, id, ev.UserID)
	if err != nil {
		log.Err(err).Int64("credential_id", id).Msg("failed to delete credential")
		c.editGeneric(ctx, ev, lang)
		return OutcomeError
	}
	if !deleted {
		c.editGeneric(ctx, ev, lang)
		return OutcomeNotFound
	}

	log.Info().Int64("credential_id", id).Str("name", cred.Name).Msg("credential removed")
	return c.edit(ctx, ev, Message{Text: i18n.T(lang, "REMOVED_SUCCESS", "name", cred.Name)})
}

// handleEditSelect asks which field of the chosen credential to change.
func (c *Controller) handleEditSelect(ctx context.Context, ev Event, id int64, lang string) Outcome {
	cred, out, ok := c.getCredential(ctx, ev, id, lang)
	if !ok {
		return out
	}

	return c.edit(ctx, ev, Message{
		Text:     i18n.T(lang, "EDIT_CHOOSE_FIELD", "name", cred.Name),
		Keyboard: editFieldKeyboard(lang, id),
	})
}

// handleEditField arms the edit_value state and prompts for the new value.
// The credential name is carried in the state so the success message can
// mention it after the flow resumes.
func (c *Controller) handleEditField(ctx context.Context, ev Event, id int64, field models.CredentialField, lang string) Outcome {
	cred, out, ok := c.getCredential(ctx, ev, id, lang)
	if !ok {
		return out
	}

	c.states.Set(ev.UserID, session.ActionEditValue, session.StepAwaitValue, map[string]string{
		dataAccountID: fmt.Sprintf("%d", id),
		dataField:     string(field),
		dataName:      cred.Name,
	})

	promptKey := "ASK_NEW_USERNAME"
	if field == models.FieldPassword {
		promptKey = "ASK_NEW_PASSWORD"
	}
	return c.edit(ctx, ev, Message{Text: i18n.T(lang, promptKey, "name", cred.Name)})
}

// handleClose removes the message that displayed a secret.
func (c *Controller) handleClose(ctx context.Context, ev Event) Outcome {
	if err := c.responder.DeleteMessage(ctx, ev.ChatID, ev.MessageID); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to delete message")
		return OutcomeError
	}
	return OutcomeOK
}
