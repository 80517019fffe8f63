package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/arianlotfi/crypto-locker/internal/i18n"
	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/session"
	"github.com/arianlotfi/crypto-locker/models"
)

// state data keys shared between the flow steps
const (
	dataName      = "name"
	dataUsername  = "username"
	dataAccountID = "account_id"
	dataField     = "field"
)

// input bounds; lengths are counted in characters, not bytes, so a Persian
// name is measured the same way the operator perceives it
const (
	maxNameLength   = 64
	maxSecretLength = 512
)

func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= maxNameLength
}

func validSecret(value string) bool {
	n := utf8.RuneCountInString(value)
	return n >= 1 && n <= maxSecretLength
}

// OnText handles any non-command text message. A user mid-flow continues
// that flow; otherwise the text is matched against the menu buttons, and
// anything unrecognized just re-shows the menu.
func (c *Controller) OnText(ctx context.Context, ev Event) Outcome {
	log := logger.FromContext(ctx)

	if !c.authorized(ev.UserID) {
		return c.rejectUnauthorized(ctx, ev)
	}

	if err := c.users.EnsureUser(ctx, ev.UserID); err != nil {
		log.Err(err).Msg("failed to ensure user on text")
		c.replyGeneric(ctx, ev, i18n.DefaultLang)
		return OutcomeError
	}

	lang := c.lang(ctx, ev.UserID)
	text := strings.TrimSpace(ev.Text)

	if state, ok := c.states.Get(ev.UserID); ok {
		return c.continueFlow(ctx, ev, state, text, lang)
	}

	switch text {
	case i18n.T(lang, "BTN_ADD"):
		c.states.Set(ev.UserID, session.ActionAdd, session.StepName, nil)
		log.Info().Msg("user started add flow")
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "ASK_ADD_NAME")})

	case i18n.T(lang, "BTN_SEARCH"):
		c.states.Set(ev.UserID, session.ActionSearch, session.StepQuery, nil)
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "ASK_SEARCH")})

	case i18n.T(lang, "BTN_REMOVE"):
		return c.sendCredentialList(ctx, ev, lang, CallbackRemoveConfirm, "PROMPT_REMOVE")

	case i18n.T(lang, "BTN_EDIT"):
		return c.sendCredentialList(ctx, ev, lang, CallbackEditSelect, "PROMPT_EDIT")

	case i18n.T(lang, "BTN_SHOW"):
		return c.sendCredentialList(ctx, ev, lang, CallbackShow, "PROMPT_SHOW")

	default:
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "MENU_HINT"), Keyboard: mainMenu(lang)})
	}
}

// send delivers msg and folds transport failures into OutcomeError.
func (c *Controller) send(ctx context.Context, ev Event, msg Message) Outcome {
	if err := c.responder.SendMessage(ctx, ev.ChatID, msg); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to send message")
		return OutcomeError
	}
	return OutcomeOK
}

// continueFlow routes a text message into the flow recorded in state.
func (c *Controller) continueFlow(ctx context.Context, ev Event, state session.State, text, lang string) Outcome {
	switch state.Action {
	case session.ActionAdd:
		return c.handleAddStep(ctx, ev, state, text, lang)

	case session.ActionSearch:
		// single-shot: the state exists only to mark that the next message
		// is the query
		c.states.Clear(ev.UserID)
		return c.handleSearchQuery(ctx, ev, text, lang)

	case session.ActionEditValue:
		return c.handleEditValue(ctx, ev, state, text, lang)

	default:
		c.states.Clear(ev.UserID)
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}
}

// handleAddStep advances the three-step add flow. Validation failures
// re-prompt without touching the state; the terminal step encrypts both
// secrets and persists, clearing the state on success and on failure alike.
func (c *Controller) handleAddStep(ctx context.Context, ev Event, state session.State, text, lang string) Outcome {
	log := logger.FromContext(ctx)

	switch state.Step {
	case session.StepName:
		if !validName(text) {
			c.send(ctx, ev, Message{Text: i18n.T(lang, "INVALID_NAME")})
			return OutcomeValidationRejected
		}
		state.Data[dataName] = text
		c.states.Set(ev.UserID, session.ActionAdd, session.StepUsername, state.Data)
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "ASK_ADD_USERNAME", "name", text)})

	case session.StepUsername:
		if !validSecret(text) {
			c.send(ctx, ev, Message{Text: i18n.T(lang, "INVALID_CREDENTIAL")})
			return OutcomeValidationRejected
		}
		state.Data[dataUsername] = text
		c.states.Set(ev.UserID, session.ActionAdd, session.StepPassword, state.Data)
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "ASK_ADD_PASSWORD", "name", state.Data[dataName])})

	case session.StepPassword:
		if !validSecret(text) {
			c.send(ctx, ev, Message{Text: i18n.T(lang, "INVALID_CREDENTIAL")})
			return OutcomeValidationRejected
		}

		// terminal step: whatever happens next, the flow is over
		defer c.states.Clear(ev.UserID)

		name := state.Data[dataName]
		usernameCT, err := c.cipher.Encrypt([]byte(state.Data[dataUsername]))
		if err != nil {
			log.Err(err).Msg("encryption failure while adding credential")
			c.replyGeneric(ctx, ev, lang)
			return OutcomeError
		}
		passwordCT, err := c.cipher.Encrypt([]byte(text))
		if err != nil {
			log.Err(err).Msg("encryption failure while adding credential")
			c.replyGeneric(ctx, ev, lang)
			return OutcomeError
		}

		if _, err := c.creds.Create(ctx, ev.UserID, name, usernameCT, passwordCT); err != nil {
			log.Err(err).Msg("storage failure while adding credential")
			c.replyGeneric(ctx, ev, lang)
			return OutcomeError
		}

		log.Info().Str("name", name).Msg("credential added")
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "ADDED_SUCCESS", "name", name)})

	default:
		c.states.Clear(ev.UserID)
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}
}

// handleSearchQuery runs the owner-scoped substring search and renders the
// matches as show buttons. No matches is a normal answer, not an error.
func (c *Controller) handleSearchQuery(ctx context.Context, ev Event, query, lang string) Outcome {
	log := logger.FromContext(ctx)

	results, err := c.creds.Search(ctx, ev.UserID, query)
	if err != nil {
		log.Err(err).Msg("search query failed")
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}

	if len(results) == 0 {
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "NO_MATCH", "q", query)})
	}

	return c.send(ctx, ev, Message{
		Text:     i18n.T(lang, "SEARCH_RESULTS"),
		Keyboard: summaryKeyboard(CallbackShow, results),
	})
}

// handleEditValue finishes the edit flow started by an edit_field callback:
// validate, encrypt, swap the single field.
func (c *Controller) handleEditValue(ctx context.Context, ev Event, state session.State, text, lang string) Outcome {
	log := logger.FromContext(ctx)

	field := models.CredentialField(state.Data[dataField])
	id, err := parseID(state.Data[dataAccountID])
	if err != nil || !field.Valid() {
		c.states.Clear(ev.UserID)
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}

	if !validSecret(text) {
		c.send(ctx, ev, Message{Text: i18n.T(lang, "INVALID_CREDENTIAL")})
		return OutcomeValidationRejected
	}

	defer c.states.Clear(ev.UserID)

	ciphertext, err := c.cipher.Encrypt([]byte(text))
	if err != nil {
		log.Err(err).Msg("encryption failure during edit")
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}

	updated, err := c.creds.UpdateField(ctx, id, ev.UserID, field, ciphertext)
	if err != nil {
		log.Err(err).Msg("storage failure during edit")
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}
	if !updated {
		c.replyGeneric(ctx, ev, lang)
		return OutcomeNotFound
	}

	fieldLabel := i18n.T(lang, "FIELD_USERNAME")
	if field == models.FieldPassword {
		fieldLabel = i18n.T(lang, "FIELD_PASSWORD")
	}

	log.Info().Int64("credential_id", id).Str("field", string(field)).Msg("credential field updated")
	return c.send(ctx, ev, Message{
		Text:     i18n.T(lang, "EDIT_SUCCESS", "field", fieldLabel, "name", state.Data[dataName]),
		Keyboard: mainMenu(lang),
	})
}

// sendCredentialList renders the operator's full list as buttons carrying
// the given action. Shared by the remove, edit, and show menu entries.
func (c *Controller) sendCredentialList(ctx context.Context, ev Event, lang string, action CallbackAction, promptKey string) Outcome {
	log := logger.FromContext(ctx)

	summaries, err := c.creds.List(ctx, ev.UserID)
	if err != nil {
		log.Err(err).Msg("list query failed")
		c.replyGeneric(ctx, ev, lang)
		return OutcomeError
	}

	if len(summaries) == 0 {
		return c.send(ctx, ev, Message{Text: i18n.T(lang, "NO_ACCOUNTS")})
	}

	return c.send(ctx, ev, Message{
		Text:     i18n.T(lang, promptKey),
		Keyboard: summaryKeyboard(action, summaries),
	})
}
