package store

import (
	"github.com/arianlotfi/crypto-locker/internal/logger"
)

// Repositories aggregates every repository the application needs, so the
// bootstrap can construct the persistence layer in one call.
type Repositories struct {
	Users       UserRepository
	Credentials CredentialRepository
}

// NewRepositories wires the repositories over the shared database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db, log),
		Credentials: NewCredentialRepository(db, log),
	}
}
