// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// crypto-locker bot. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Bot holds the Telegram transport settings: API token, the single
	// authorized operator, and long-polling parameters.
	Bot Bot `envPrefix:"BOT_"`

	// Storage holds the SQLite database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Encryption holds the key-derivation inputs. The passphrase and salt
	// file are combined once at startup to derive the vault key; neither is
	// ever persisted or logged.
	Encryption Encryption `envPrefix:"ENCRYPTION_"`

	// Session holds the conversation-state table settings.
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Bot holds the Telegram transport configuration.
type Bot struct {
	// Token is the Telegram Bot API token obtained from @BotFather.
	// Must be kept confidential.
	// Env: BOT_TOKEN
	Token string `env:"TOKEN"`

	// AdminID is the Telegram user identifier of the single authorized
	// operator. Every inbound update from any other identity is rejected.
	// Env: BOT_ADMIN_ID
	AdminID int64 `env:"ADMIN_ID"`

	// PollTimeout is the long-polling timeout passed to getUpdates
	// (e.g. "30s"). Defaults to 30 seconds when zero.
	// Env: BOT_POLL_TIMEOUT
	PollTimeout time.Duration `env:"POLL_TIMEOUT"`
}

// Storage holds the persistence configuration.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite database file.
type DB struct {
	// Path is the filesystem path of the SQLite database file. The file is
	// created on first start if it does not exist.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Encryption holds the key-derivation configuration.
type Encryption struct {
	// Passphrase is the secret passphrase the vault key is derived from.
	// Env: ENCRYPTION_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// SaltFile is the path of the installation-specific salt file. The salt
	// must contain at least 16 random bytes and is generated once during
	// installation (see the -generate-salt flag of cmd/bot).
	// Env: ENCRYPTION_SALT_FILE
	SaltFile string `env:"SALT_FILE"`

	// Iterations is the PBKDF2 iteration count. Defaults to 240000 when
	// zero. Lowering it weakens brute-force resistance of the passphrase.
	// Env: ENCRYPTION_ITERATIONS
	Iterations int `env:"ITERATIONS"`
}

// Session holds the conversation-state table configuration.
type Session struct {
	// TTL is the sliding expiration window of an in-flight multi-step
	// conversation. Defaults to 300 seconds when zero.
	// Env: SESSION_TTL
	TTL time.Duration `env:"TTL"`

	// SweepInterval is how often the background worker purges expired
	// conversation states. Defaults to 1 minute when zero.
	// Env: SESSION_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// Defaults applied by validate for fields left unset by every source.
const (
	DefaultPollTimeout   = 30 * time.Second
	DefaultIterations    = 240_000
	DefaultSessionTTL    = 300 * time.Second
	DefaultSweepInterval = time.Minute
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to parse or the merged result is invalid.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
