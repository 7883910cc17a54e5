package security

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	envelopePrefix = "enc:v1:"
	hkdfInfo       = "orders-api field cipher v1"
)

// XChaCha encrypts fields in-process with XChaCha20-Poly1305 under a key
// derived from the configured passphrase.
type XChaCha struct {
	aead cipher.AEAD
}

func NewXChaCha(passphrase string) (*XChaCha, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}
	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}
	return &XChaCha{aead: aead}, nil
}

func (x *XChaCha) Encrypt(_ context.Context, plaintext string) (string, error) {
	nonce := make([]byte, x.aead.NonceSize(), x.aead.NonceSize()+len(plaintext)+x.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := x.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return envelopePrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (x *XChaCha) Decrypt(_ context.Context, stored string) (string, error) {
	if !strings.HasPrefix(stored, envelopePrefix) {
		return "", ErrNotCiphertext
	}
	sealed, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(stored, envelopePrefix))
	if err != nil {
		return "", fmt.Errorf("decode envelope: %w", err)
	}
	if len(sealed) < x.aead.NonceSize() {
		return "", fmt.Errorf("envelope too short")
	}
	nonce, ciphertext := sealed[:x.aead.NonceSize()], sealed[x.aead.NonceSize():]
	plaintext, err := x.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("open envelope: %w", err)
	}
	return string(plaintext), nil
}

// IsCiphertext also recognises legacy store-encrypted values so they surface
// as the placeholder instead of raw bytes.
func (x *XChaCha) IsCiphertext(stored string) bool {
	return strings.HasPrefix(stored, envelopePrefix) || isLegacyBytea(stored)
}

func (x *XChaCha) Ready(context.Context) error { return nil }
