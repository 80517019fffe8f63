// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package config

import "errors"

// applyDefaults fills in the fields that every source left at their zero
// value. Defaults are applied before validation so that only genuinely
// required settings can fail the startup check.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Bot.PollTimeout == 0 {
		cfg.Bot.PollTimeout = DefaultPollTimeout
	}
	if cfg.Encryption.Iterations == 0 {
		cfg.Encryption.Iterations = DefaultIterations
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = DefaultSessionTTL
	}
	if cfg.Session.SweepInterval == 0 {
		cfg.Session.SweepInterval = DefaultSweepInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. All violations are
// reported at once via errors.Join so the operator can fix the whole
// configuration in one pass.
//
// Startup must abort on any validation error: running without a token,
// operator id, database path, salt file, or passphrase is never safe.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Bot.Token == "" {
		errs = append(errs, ErrTokenRequired)
	}
	if cfg.Bot.AdminID <= 0 {
		errs = append(errs, ErrAdminIDRequired)
	}
	if cfg.Storage.DB.Path == "" {
		errs = append(errs, ErrDBPathRequired)
	}
	if cfg.Encryption.SaltFile == "" {
		errs = append(errs, ErrSaltFileRequired)
	}
	if cfg.Encryption.Passphrase == "" {
		errs = append(errs, ErrPassphraseRequired)
	}
	if cfg.Encryption.Iterations < 1 {
		errs = append(errs, ErrInvalidIterations)
	}

	return errors.Join(errs...)
}
