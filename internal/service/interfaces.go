package service

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/responder_mock.go -package=mock

// Responder is the outbound half of the chat transport. The controller
// formats replies and keyboards, the transport delivers them; nothing in
// this package knows how Telegram encodes either.
type Responder interface {
	// SendMessage delivers a new message to the chat.
	SendMessage(ctx context.Context, chatID int64, msg Message) error

	// EditMessage rewrites a previously sent message in place. Used by
	// callback handlers so a tapped keyboard collapses into its result.
	EditMessage(ctx context.Context, chatID, messageID int64, msg Message) error

	// DeleteMessage removes a message from the chat. Used by the close
	// button so displayed secrets do not linger on screen.
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// Message is a transport-agnostic outbound message.
type Message struct {
	// Text is the message body. When HTML is set the text contains markup
	// produced by the controller with all user data already escaped.
	Text string

	// HTML marks Text as HTML-formatted.
	HTML bool

	// Keyboard optionally attaches a keyboard to the message.
	Keyboard *Keyboard
}

// Keyboard is a transport-agnostic keyboard descriptor.
type Keyboard struct {
	// Inline selects a callback keyboard attached to one message, as
	// opposed to a persistent reply keyboard under the input field.
	Inline bool

	// Rows holds the buttons, outer slice per row.
	Rows [][]Button
}

// Button is one keyboard button. Data carries the callback payload and is
// empty for reply-keyboard buttons, whose label doubles as the sent text.
type Button struct {
	Label string
	Data  string
}

// Event is an inbound update as seen by the controller: who wrote, where,
// and either message text or a callback payload.
type Event struct {
	// UserID is the Telegram identifier of the sender.
	UserID int64

	// ChatID is the chat to reply into.
	ChatID int64

	// MessageID is the message the event originates from. For callbacks it
	// identifies the message whose keyboard was tapped, so the handler can
	// edit it in place.
	MessageID int64

	// Text is the message text for text events, empty for callbacks.
	Text string
}

// Outcome is the logical result of one controller entry point, reported
// back to the transport. These are not process exit codes; the dispatcher
// uses them for logging and metrics only.
type Outcome int

const (
	// OutcomeOK means the event was handled, including business-level
	// "nothing found" answers that are valid results.
	OutcomeOK Outcome = iota

	// OutcomeValidationRejected means the input failed validation and the
	// user was re-prompted; any in-flight state is preserved.
	OutcomeValidationRejected

	// OutcomeNotAuthorized means the sender is not the operator. No state
	// was touched.
	OutcomeNotAuthorized

	// OutcomeNotFound means the referenced record does not exist for this
	// owner.
	OutcomeNotFound

	// OutcomeError means an internal failure was collapsed into a generic
	// user-facing message.
	OutcomeError
)

// String implements fmt.Stringer for log fields.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeValidationRejected:
		return "validation_rejected"
	case OutcomeNotAuthorized:
		return "not_authorized"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}
