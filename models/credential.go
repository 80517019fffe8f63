package models

import "time"

// Credential is a stored username/password pair owned by exactly one user.
// The Username and Password fields hold authenticated-encryption tokens
// produced by the crypto package; plaintext secrets never reach this struct
// on the persistence path.
type Credential struct {
	// ID is the store-assigned unique identifier of the record.
	ID int64

	// OwnerID is the Telegram identifier of the owning user. Every storage
	// operation on a credential must supply and match this value.
	OwnerID int64

	// Name is the human-readable label of the record (1-64 characters),
	// stored in the clear so it can be listed and searched.
	Name string

	// Username is the ciphertext token of the account username.
	Username []byte

	// Password is the ciphertext token of the account password.
	Password []byte

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every field update.
	UpdatedAt time.Time
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}

// CredentialSummary is the lightweight (id, name) projection returned by
// list and search queries. It carries no ciphertext, so it is safe to render
// directly into chat keyboards.
type CredentialSummary struct {
	ID   int64
	Name string
}

// CredentialField names a mutable secret field of a credential. It is a
// closed set: only the two constants below are accepted by the store.
type CredentialField string

const (
	// FieldUsername targets the encrypted username column.
	FieldUsername CredentialField = "username"

	// FieldPassword targets the encrypted password column.
	FieldPassword CredentialField = "password"
)

// Valid reports whether f is one of the two known credential fields.
func (f CredentialField) Valid() bool {
	return f == FieldUsername || f == FieldPassword
}
