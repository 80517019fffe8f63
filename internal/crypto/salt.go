package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
)

// LoadSalt reads the installation-specific salt file created during setup.
// The salt is persisted alongside the database so that every startup derives
// the same vault key from the same passphrase.
//
// Returns ErrSaltFile if the file is missing, unreadable, or shorter than
// 16 bytes.
func LoadSalt(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaltFile, err)
	}
	if len(data) < MinSaltLength {
		return nil, fmt.Errorf("%w: must contain at least %d random bytes", ErrSaltFile, MinSaltLength)
	}

	return data, nil
}

// GenerateSalt reads 16 random bytes from the OS CSPRNG and returns them as
// a fresh key-derivation salt. Returns an error if the random read fails.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, MinSaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// WriteSaltFile generates a fresh salt and writes it to path with 0600
// permissions. It refuses to overwrite an existing file: replacing the salt
// of a live installation would make every stored token undecryptable.
func WriteSaltFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s already exists, refusing to overwrite", ErrSaltFile, path)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaltFile, err)
	}

	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrSaltFile, err)
	}

	return nil
}
