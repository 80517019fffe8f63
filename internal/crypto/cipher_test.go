package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func testCipher(t *testing.T, passphrase string) Cipher {
	t.Helper()

	salt := bytes.Repeat([]byte{0xAB}, MinSaltLength)
	// low iteration count keeps the test fast; derivation strength is not
	// under test here
	key, err := DeriveKey(passphrase, salt, 1000)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher error: %v", err)
	}
	return c
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, MinSaltLength)

	k1, err := DeriveKey("correct horse battery staple", salt, 1000)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := DeriveKey("correct horse battery staple", salt, 1000)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if len(k1) != KeyLength {
		t.Fatalf("key length = %d, want %d", len(k1), KeyLength)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatal("expected identical keys for identical inputs")
	}
}

func TestDeriveKey_DifferentPassphrasesDiffer(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, MinSaltLength)

	k1, err := DeriveKey("passphrase one", salt, 1000)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := DeriveKey("passphrase two", salt, 1000)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatal("expected different keys for different passphrases")
	}
}

func TestDeriveKey_RejectsBadInputs(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, MinSaltLength)

	cases := []struct {
		name       string
		passphrase string
		salt       []byte
		iterations int
	}{
		{"empty passphrase", "", salt, 1000},
		{"short salt", "secret", salt[:MinSaltLength-1], 1000},
		{"zero iterations", "secret", salt, 0},
		{"negative iterations", "secret", salt, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DeriveKey(tc.passphrase, tc.salt, tc.iterations)
			if !errors.Is(err, ErrKeyDerivation) {
				t.Fatalf("expected ErrKeyDerivation, got %v", err)
			}
		})
	}
}

func TestNewCipher_RejectsWrongKeyLength(t *testing.T) {
	if _, err := NewCipher(make([]byte, 16)); err == nil {
		t.Fatal("expected error for 16-byte key, got nil")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := testCipher(t, "vault passphrase")

	plaintexts := [][]byte{
		[]byte("s3cr3t"),
		[]byte("me@x.com"),
		[]byte(""),
		bytes.Repeat([]byte("long secret "), 100),
		{0x00, 0xFF, 0x10, 0x80},
	}

	for _, p := range plaintexts {
		token, err := c.Encrypt(p)
		if err != nil {
			t.Fatalf("Encrypt error: %v", err)
		}
		got, err := c.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("round trip mismatch: got %q, want %q", got, p)
		}
	}
}

func TestEncrypt_TokensDifferPerCall(t *testing.T) {
	c := testCipher(t, "vault passphrase")

	t1, err := c.Encrypt([]byte("same plaintext"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	t2, err := c.Encrypt([]byte("same plaintext"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if bytes.Equal(t1, t2) {
		t.Fatal("expected distinct tokens for repeated encryption of the same plaintext")
	}
}

func TestDecrypt_DetectsTamperingAtEveryByte(t *testing.T) {
	c := testCipher(t, "vault passphrase")

	token, err := c.Encrypt([]byte("tamper me"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	for i := range token {
		mutated := bytes.Clone(token)
		mutated[i] ^= 0x01

		got, err := c.Decrypt(mutated)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("byte %d: expected ErrInvalidToken, got err=%v", i, err)
		}
		if got != nil {
			t.Fatalf("byte %d: expected no plaintext on failure, got %q", i, got)
		}
	}
}

func TestDecrypt_RejectsTruncatedToken(t *testing.T) {
	c := testCipher(t, "vault passphrase")

	token, err := c.Encrypt([]byte("short me"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	for _, n := range []int{0, 1, headerLength, headerLength + 11, len(token) - 1} {
		if _, err := c.Decrypt(token[:n]); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("length %d: expected ErrInvalidToken, got %v", n, err)
		}
	}
}

func TestDecrypt_RejectsUnknownVersion(t *testing.T) {
	c := testCipher(t, "vault passphrase")

	token, err := c.Encrypt([]byte("versioned"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	token[0] = 0x02

	if _, err := c.Decrypt(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	// same salt, different passphrases: simulates a wrong startup passphrase
	// against tokens written by a previous run
	c1 := testCipher(t, "original passphrase")
	c2 := testCipher(t, "different passphrase")

	token, err := c1.Encrypt([]byte("owned by c1"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := c2.Decrypt(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
