// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count used when the
	// deployment does not override it. 240k iterations keeps offline
	// guessing of a human passphrase expensive on commodity hardware.
	DefaultIterations = 240_000

	// KeyLength is the derived key size in bytes (AES-256).
	KeyLength = 32

	// MinSaltLength is the minimum accepted salt size in bytes.
	MinSaltLength = 16

	// tokenVersion is the current ciphertext format version byte.
	tokenVersion = 0x01

	// headerLength is version byte + 8-byte big-endian unix timestamp.
	headerLength = 1 + 8
)

// DeriveKey derives a 32-byte vault key from passphrase and salt using
// PBKDF2-HMAC-SHA256. The same inputs always produce the same key, which is
// what lets repeated startups open previously written tokens.
//
// Returns ErrKeyDerivation if passphrase is empty, salt is shorter than 16
// bytes, or iterations is not positive.
func DeriveKey(passphrase string, salt []byte, iterations int) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: passphrase is required", ErrKeyDerivation)
	}
	if len(salt) < MinSaltLength {
		return nil, fmt.Errorf("%w: salt must contain at least %d bytes", ErrKeyDerivation, MinSaltLength)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iteration count must be positive", ErrKeyDerivation)
	}

	return pbkdf2.Key([]byte(passphrase), salt, iterations, KeyLength, sha256.New), nil
}

// vaultCipher is the private implementation of [Cipher]. It holds the
// pre-built AEAD so the AES key schedule is computed once at startup, not
// per message.
type vaultCipher struct {
	aead cipher.AEAD
	now  func() time.Time
}

// NewCipher constructs a [Cipher] over the given 32-byte key. The key is
// consumed to build the AES-256-GCM AEAD and is not retained.
func NewCipher(key []byte) (Cipher, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrKeyDerivation, KeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncrypt, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncrypt, err)
	}

	return &vaultCipher{aead: aead, now: time.Now}, nil
}

// Encrypt implements [Cipher]. The header (version ‖ timestamp) is passed
// to GCM as additional authenticated data, so flipping any header bit makes
// the token fail authentication exactly like a ciphertext bit-flip would.
func (c *vaultCipher) Encrypt(plaintext []byte) ([]byte, error) {
	header := make([]byte, headerLength)
	header[0] = tokenVersion
	binary.BigEndian.PutUint64(header[1:], uint64(c.now().Unix()))

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %w", ErrEncrypt, err)
	}

	// Token layout: header || nonce || ciphertext.
	token := make([]byte, 0, headerLength+len(nonce)+len(plaintext)+c.aead.Overhead())
	token = append(token, header...)
	token = append(token, nonce...)
	token = c.aead.Seal(token, nonce, plaintext, header)

	return token, nil
}

// Decrypt implements [Cipher]. Every failure mode collapses into
// ErrInvalidToken so a caller (or attacker feeding crafted rows) learns
// nothing about which check rejected the token.
func (c *vaultCipher) Decrypt(token []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(token) < headerLength+nonceSize+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: token too short", ErrInvalidToken)
	}
	if token[0] != tokenVersion {
		return nil, fmt.Errorf("%w: unknown format version", ErrInvalidToken)
	}

	header := token[:headerLength]
	nonce := token[headerLength : headerLength+nonceSize]
	ciphertext := token[headerLength+nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrInvalidToken)
	}

	return plaintext, nil
}
