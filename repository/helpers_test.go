package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Kariqs/orders-api/models"
	"github.com/Kariqs/orders-api/security"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestGateway opens a private in-memory SQLite database with the schema applied.
func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.AuditEvent{}))
	return NewGateway(db)
}

// newFileTestGateway opens a SQLite file with a busy timeout, so several
// connections can write concurrently.
func newFileTestGateway(t *testing.T) *Gateway {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "orders.db") + "?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.AuditEvent{}))
	return NewGateway(db)
}

func newTestCipher(t *testing.T, key string) *security.XChaCha {
	t.Helper()
	c, err := security.NewXChaCha(key)
	require.NoError(t, err)
	return c
}

// brokenCipher fails every encryption, like a store without pgcrypto.
type brokenCipher struct {
	security.Cipher
}

func (brokenCipher) Encrypt(context.Context, string) (string, error) {
	return "", errors.New("function pgp_sym_encrypt(text, text) does not exist")
}

// unavailableCipher decrypts fine but reports itself as not ready.
type unavailableCipher struct {
	security.Cipher
}

func (unavailableCipher) Ready(context.Context) error {
	return security.ErrCipherUnavailable
}

type fallbackRecord struct {
	field string
	email string
}

type recordingFallback struct {
	mu      sync.Mutex
	records []fallbackRecord
}

func (r *recordingFallback) RecordCipherFallback(_ context.Context, field, email string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, fallbackRecord{field: field, email: email})
}
