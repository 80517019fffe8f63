package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher performs authenticated encryption of credential material with the
// vault key derived once at startup. It knows nothing about Telegram, the
// database, or users; its only job is to seal and open byte payloads.
//
// Implementations must be safe for concurrent use: the controller encrypts
// and decrypts from multiple update-handling goroutines.
type Cipher interface {
	// Encrypt seals plaintext into a self-describing token:
	//
	//	version (1 byte) ‖ unix seconds (8 bytes, big endian) ‖
	//	nonce (12 bytes) ‖ AES-256-GCM ciphertext
	//
	// The version and timestamp are bound as GCM additional data, so any
	// tampering with the header is detected on decrypt.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens a token produced by Encrypt. It returns ErrInvalidToken
	// if the token is truncated, carries an unknown version, was produced
	// under a different key, or fails authentication. No partial plaintext
	// is ever returned.
	Decrypt(token []byte) ([]byte, error)
}
