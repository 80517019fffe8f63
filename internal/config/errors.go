package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid. Any of these aborts startup.
var (
	// ErrTokenRequired indicates that no Telegram bot token was supplied by
	// any configuration source.
	ErrTokenRequired = errors.New("bot token is required")
	// ErrAdminIDRequired indicates a missing or non-positive operator id.
	ErrAdminIDRequired = errors.New("admin telegram id is required")
	// ErrDBPathRequired indicates that no database file path was supplied.
	ErrDBPathRequired = errors.New("database path is required")
	// ErrSaltFileRequired indicates that no key-derivation salt file path
	// was supplied.
	ErrSaltFileRequired = errors.New("salt file path is required")
	// ErrPassphraseRequired indicates that no encryption passphrase was
	// supplied via the environment or the JSON config file.
	ErrPassphraseRequired = errors.New("encryption passphrase is required")
	// ErrInvalidIterations indicates a non-positive PBKDF2 iteration count.
	ErrInvalidIterations = errors.New("pbkdf2 iteration count must be positive")
)
