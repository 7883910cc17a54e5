package security

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const pgpPrefix = "pgp:"

// PGCrypto delegates encryption to the store's pgcrypto extension
// (pgp_sym_encrypt / pgp_sym_decrypt). Ciphertext is kept hex-encoded behind
// a "pgp:" prefix; legacy rows holding the store's `\x` bytea text are
// decrypted too.
type PGCrypto struct {
	db  *gorm.DB
	key string
}

func NewPGCrypto(db *gorm.DB, key string) (*PGCrypto, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &PGCrypto{db: db, key: key}, nil
}

func (p *PGCrypto) Encrypt(ctx context.Context, plaintext string) (string, error) {
	var hexed string
	err := p.db.WithContext(ctx).
		Raw("SELECT encode(pgp_sym_encrypt(?, ?), 'hex')", plaintext, p.key).
		Scan(&hexed).Error
	if err != nil {
		return "", fmt.Errorf("pgp_sym_encrypt: %w", err)
	}
	return pgpPrefix + hexed, nil
}

func (p *PGCrypto) Decrypt(ctx context.Context, stored string) (string, error) {
	var hexed string
	switch {
	case strings.HasPrefix(stored, pgpPrefix):
		hexed = strings.TrimPrefix(stored, pgpPrefix)
	case isLegacyBytea(stored):
		hexed = strings.TrimPrefix(stored, legacyByteaPrefix)
	default:
		return "", ErrNotCiphertext
	}

	var plaintext string
	err := p.db.WithContext(ctx).
		Raw("SELECT pgp_sym_decrypt(decode(?, 'hex'), ?)", hexed, p.key).
		Scan(&plaintext).Error
	if err != nil {
		return "", fmt.Errorf("pgp_sym_decrypt: %w", err)
	}
	return plaintext, nil
}

func (p *PGCrypto) IsCiphertext(stored string) bool {
	return strings.HasPrefix(stored, pgpPrefix) || isLegacyBytea(stored)
}

// Ready fails with ErrCipherUnavailable when the extension is not installed.
func (p *PGCrypto) Ready(ctx context.Context) error {
	installed, err := PGCryptoInstalled(ctx, p.db)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCipherUnavailable, err)
	}
	if !installed {
		return fmt.Errorf("%w: pgcrypto extension is not installed", ErrCipherUnavailable)
	}
	return nil
}

// PGCryptoInstalled reports whether the pgcrypto extension is enabled.
func PGCryptoInstalled(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM pg_extension WHERE extname = 'pgcrypto'").
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
