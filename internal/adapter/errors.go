package adapter

import "errors"

var (
	// ErrTokenRequired is returned by NewTelegramClient for an empty token.
	ErrTokenRequired = errors.New("telegram bot token is required")

	// ErrTelegramAPI is the generic wrapper for any Bot API response with
	// ok=false. The wrapped message carries the API description.
	ErrTelegramAPI = errors.New("telegram api error")

	// ErrTooManyRequests is returned when the API rate-limits the bot
	// (error_code 429).
	ErrTooManyRequests = errors.New("telegram api rate limit")

	// ErrBadResponse is returned when the response body cannot be decoded
	// as a Bot API envelope.
	ErrBadResponse = errors.New("malformed telegram api response")
)
