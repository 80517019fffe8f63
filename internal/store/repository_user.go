package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arianlotfi/crypto-locker/internal/logger"
)

// defaultLang is returned for users that have no row yet.
const defaultLang = "en"

// userRepository is the SQLite-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, update-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureUser implements [UserRepository]. The INSERT OR IGNORE makes the
// call idempotent, so every entry point can run it unconditionally on first
// contact.
func (r *userRepository) EnsureUser(ctx context.Context, telegramID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, ensureUser, telegramID); err != nil {
		log.Err(err).Str("func", "*userRepository.EnsureUser").Msg("error inserting user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetLang implements [UserRepository]. An unknown user yields the default
// language rather than an error; the caller cannot act on the difference.
func (r *userRepository) GetLang(ctx context.Context, telegramID int64) (string, error) {
	log := logger.FromContext(ctx)

	var lang string
	err := r.db.QueryRowContext(ctx, getUserLang, telegramID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultLang, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetLang").Msg("error reading user language")
		return defaultLang, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return lang, nil
}

// SetLang implements [UserRepository].
func (r *userRepository) SetLang(ctx context.Context, telegramID int64, lang string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, setUserLang, lang, telegramID); err != nil {
		log.Err(err).Str("func", "*userRepository.SetLang").Msg("error updating user language")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// DeleteUser implements [UserRepository]. Credential rows owned by the user
// are removed by the foreign-key cascade in the same statement; this is a
// contract of the schema and is asserted by the integration tests.
func (r *userRepository) DeleteUser(ctx context.Context, telegramID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteUser, telegramID); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
