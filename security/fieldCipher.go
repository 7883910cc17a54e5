package security

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
)

// EncryptedPlaceholder is returned in place of a value that is stored
// encrypted but could not be decrypted with the configured key.
const EncryptedPlaceholder = "[Encrypted Data]"

// legacyByteaPrefix is how the store renders binary pgcrypto output as text.
const legacyByteaPrefix = `\x`

var (
	ErrCipherUnavailable = errors.New("field cipher unavailable")
	ErrNotCiphertext     = errors.New("value is not a cipher envelope")
	ErrEmptyKey          = errors.New("field cipher key is empty")
)

// Cipher encrypts and decrypts sensitive customer fields. Encrypt returns a
// self-describing envelope so readers can tell ciphertext from plaintext
// without knowing which key or store produced it.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, stored string) (string, error)
	IsCiphertext(stored string) bool
	// Ready reports whether the cipher can currently decrypt at all.
	Ready(ctx context.Context) error
}

// Reveal turns a stored value into what callers may see: the decrypted text,
// the plaintext as stored, or EncryptedPlaceholder when decryption fails.
func Reveal(ctx context.Context, c Cipher, stored string) string {
	if !c.IsCiphertext(stored) {
		return stored
	}
	plaintext, err := c.Decrypt(ctx, stored)
	if err != nil {
		log.Printf("field decrypt failed: %v", err)
		return EncryptedPlaceholder
	}
	return plaintext
}

// RevealRaw is Reveal without any decryption attempt, used when the cipher
// is known to be unavailable.
func RevealRaw(c Cipher, stored string) string {
	if c.IsCiphertext(stored) {
		return EncryptedPlaceholder
	}
	return stored
}

// DecodeAddress parses a revealed address as JSON, falling back to the raw
// string when it is not valid JSON or is the encrypted placeholder.
func DecodeAddress(revealed string) any {
	if revealed == EncryptedPlaceholder {
		return revealed
	}
	var address any
	if err := json.Unmarshal([]byte(revealed), &address); err != nil {
		return revealed
	}
	return address
}

func isLegacyBytea(stored string) bool {
	return strings.HasPrefix(stored, legacyByteaPrefix)
}
