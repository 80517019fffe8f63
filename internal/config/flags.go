package config

import (
	"flag"
	"time"
)

// GenerateSaltPath is set by the -generate-salt flag. When non-empty the
// process writes a fresh salt file to this path and exits instead of
// starting the bot; config validation is skipped so the helper works on a
// fresh host. Read by cmd/bot after ParseFlags has run.
var GenerateSaltPath string

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-token Telegram bot API token
//	-admin-id Telegram user id of the authorized operator
//	-poll-timeout long-polling timeout (e.g., "30s")
//	-d database file path
//	-salt-file key-derivation salt file path
//	-iterations PBKDF2 iteration count
//	-session-ttl conversation state TTL (e.g., "5m")
//	-sweep-interval expired-state sweep interval (e.g., "1m")
//	-c/-config json file path with configs
//	-generate-salt write a new salt file to the given path and exit
//
// The encryption passphrase has no flag on purpose: a flag value would be
// visible in the process list. It is accepted only via the environment or
// the JSON config file.
func ParseFlags() *StructuredConfig {
	var token string
	var adminID int64
	var pollTimeout time.Duration
	var dbPath string
	var saltFile string
	var iterations int
	var sessionTTL time.Duration
	var sweepInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&token, "token", "", "Telegram bot API token")
	flag.Int64Var(&adminID, "admin-id", 0, "Authorized operator Telegram id")
	flag.DurationVar(&pollTimeout, "poll-timeout", 0, "Long-polling timeout (e.g., 30s)")
	flag.StringVar(&dbPath, "d", "", "Database file path")
	flag.StringVar(&saltFile, "salt-file", "", "Key-derivation salt file path")
	flag.IntVar(&iterations, "iterations", 0, "PBKDF2 iteration count")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Conversation state TTL (e.g., 5m)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired-state sweep interval (e.g., 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&GenerateSaltPath, "generate-salt", "", "Write a new salt file to the given path and exit")

	flag.Parse()

	return &StructuredConfig{
		Bot: Bot{
			Token:       token,
			AdminID:     adminID,
			PollTimeout: pollTimeout,
		},
		Storage: Storage{
			DB: DB{
				Path: dbPath,
			},
		},
		Encryption: Encryption{
			SaltFile:   saltFile,
			Iterations: iterations,
		},
		Session: Session{
			TTL:           sessionTTL,
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
