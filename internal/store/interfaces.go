package store

import (
	"context"

	"github.com/arianlotfi/crypto-locker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository manages the users table. Users are created lazily on first
// contact and carry only their preferred language.
type UserRepository interface {
	// EnsureUser inserts the user if it does not exist yet. Idempotent.
	EnsureUser(ctx context.Context, telegramID int64) error

	// GetLang returns the user's preferred language tag, or "en" when the
	// user is unknown.
	GetLang(ctx context.Context, telegramID int64) (string, error)

	// SetLang updates the user's preferred language tag.
	SetLang(ctx context.Context, telegramID int64, lang string) error

	// DeleteUser removes the user row. The schema cascades the delete to
	// every credential the user owns.
	DeleteUser(ctx context.Context, telegramID int64) error
}

// CredentialRepository manages encrypted credential records. Every method is
// parameterized by the owner identifier, and the owner predicate is part of
// the same SQL statement as the id lookup: a record owned by someone else is
// indistinguishable from a record that does not exist.
type CredentialRepository interface {
	// Create persists a new credential and returns its store-assigned id.
	// Both secret arguments must already be ciphertext tokens.
	Create(ctx context.Context, ownerID int64, name string, usernameCT, passwordCT []byte) (int64, error)

	// List returns (id, name) summaries of every credential the owner has,
	// ordered by name.
	List(ctx context.Context, ownerID int64) ([]models.CredentialSummary, error)

	// Search returns summaries whose name contains query as a
	// case-insensitive substring, ordered by name. An empty result is not
	// an error.
	Search(ctx context.Context, ownerID int64, query string) ([]models.CredentialSummary, error)

	// Get returns the full credential for (id, owner), or
	// ErrCredentialNotFound when no such pair exists.
	Get(ctx context.Context, id, ownerID int64) (models.Credential, error)

	// UpdateField replaces one secret field with new ciphertext and
	// refreshes updated_at. Reports false, without error, when the
	// (id, owner) pair matches no row.
	UpdateField(ctx context.Context, id, ownerID int64, field models.CredentialField, ciphertext []byte) (bool, error)

	// Delete removes the credential. Same not-found semantics as
	// UpdateField.
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}
