package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyDerivation is returned by DeriveKey when the passphrase is
	// empty, the salt is too short, or the iteration count is not positive.
	// Fatal at startup: the process must not run with a weak or missing key.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrSaltFile is returned by LoadSalt when the salt file is missing or
	// contains fewer than 16 bytes. Fatal at startup.
	ErrSaltFile = errors.New("invalid salt file")

	// ErrEncrypt is returned when sealing a plaintext fails. With a valid
	// 32-byte key this only happens if the OS random source fails.
	ErrEncrypt = errors.New("unable to encrypt data")

	// ErrInvalidToken is returned by Decrypt for any token that is
	// truncated, tampered with, of an unknown format version, or produced
	// under a different key. The caller cannot distinguish these cases;
	// that is deliberate.
	ErrInvalidToken = errors.New("invalid encryption token")
)
