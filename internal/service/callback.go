package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/arianlotfi/crypto-locker/models"
)

// CallbackAction is the closed set of button actions the bot emits. Payloads
// are parsed into this enum once at the boundary; handlers switch over it
// exhaustively instead of re-inspecting strings.
type CallbackAction int

const (
	// CallbackShow displays a credential's decrypted fields.
	CallbackShow CallbackAction = iota

	// CallbackRemoveConfirm shows the yes/no prompt before a delete.
	CallbackRemoveConfirm

	// CallbackRemoveDo performs the delete after confirmation.
	CallbackRemoveDo

	// CallbackCancel aborts a confirmation prompt without mutation.
	CallbackCancel

	// CallbackEditSelect shows the username/password field choice.
	CallbackEditSelect

	// CallbackEditField starts the edit_value flow for one field.
	CallbackEditField

	// CallbackClose deletes the message displaying a secret.
	CallbackClose
)

// wire tokens of the payload's first segment
const (
	tokenShow          = "show"
	tokenRemoveConfirm = "remove_confirm"
	tokenRemoveDo      = "remove_do"
	tokenCancel        = "cancel"
	tokenEditSelect    = "edit_select"
	tokenEditField     = "edit_field"
	tokenClose         = "close"
)

// ErrBadCallback is returned for any payload that does not parse into a
// known action with well-formed arguments. The user-facing reaction is
// always the same generic error, regardless of what exactly was wrong.
var ErrBadCallback = errors.New("malformed callback payload")

// Callback is a parsed payload. CredentialID is set for actions that
// reference a record; Field only for CallbackEditField.
type Callback struct {
	Action       CallbackAction
	CredentialID int64
	Field        models.CredentialField
}

// Encode renders the callback into its compact wire form `action|id[|field]`.
func (c Callback) Encode() string {
	switch c.Action {
	case CallbackShow:
		return tokenShow + "|" + strconv.FormatInt(c.CredentialID, 10)
	case CallbackRemoveConfirm:
		return tokenRemoveConfirm + "|" + strconv.FormatInt(c.CredentialID, 10)
	case CallbackRemoveDo:
		return tokenRemoveDo + "|" + strconv.FormatInt(c.CredentialID, 10)
	case CallbackCancel:
		return tokenCancel
	case CallbackEditSelect:
		return tokenEditSelect + "|" + strconv.FormatInt(c.CredentialID, 10)
	case CallbackEditField:
		return tokenEditField + "|" + strconv.FormatInt(c.CredentialID, 10) + "|" + string(c.Field)
	case CallbackClose:
		return tokenClose
	default:
		return ""
	}
}

// ParseCallback parses a wire payload. Every malformed shape — unknown
// action, wrong segment count, missing or non-numeric id, unknown field —
// returns ErrBadCallback; the function never panics on crafted input.
func ParseCallback(payload string) (Callback, error) {
	parts := strings.Split(payload, "|")

	switch parts[0] {
	case tokenCancel:
		if len(parts) != 1 {
			return Callback{}, ErrBadCallback
		}
		return Callback{Action: CallbackCancel}, nil

	case tokenClose:
		if len(parts) != 1 {
			return Callback{}, ErrBadCallback
		}
		return Callback{Action: CallbackClose}, nil

	case tokenShow, tokenRemoveConfirm, tokenRemoveDo, tokenEditSelect:
		if len(parts) != 2 {
			return Callback{}, ErrBadCallback
		}
		id, err := parseID(parts[1])
		if err != nil {
			return Callback{}, err
		}
		action := map[string]CallbackAction{
			tokenShow:          CallbackShow,
			tokenRemoveConfirm: CallbackRemoveConfirm,
			tokenRemoveDo:      CallbackRemoveDo,
			tokenEditSelect:    CallbackEditSelect,
		}[parts[0]]
		return Callback{Action: action, CredentialID: id}, nil

	case tokenEditField:
		if len(parts) != 3 {
			return Callback{}, ErrBadCallback
		}
		id, err := parseID(parts[1])
		if err != nil {
			return Callback{}, err
		}
		field := models.CredentialField(parts[2])
		if !field.Valid() {
			return Callback{}, ErrBadCallback
		}
		return Callback{Action: CallbackEditField, CredentialID: id, Field: field}, nil

	default:
		return Callback{}, ErrBadCallback
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrBadCallback
	}
	return id, nil
}
