package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/orders-api/models"
	"github.com/Kariqs/orders-api/security"
	"gorm.io/gorm"
)

var (
	ErrDatabaseUnavailable = errors.New("database connection failed")
	ErrSchemaMissing       = errors.New("migrations not applied")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrOrderNotFound       = errors.New("order not found")
)

// MissingTableError reports a table the migrations should have created.
type MissingTableError struct {
	Table string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("%s table does not exist. Please run the database migrations.", e.Table)
}

func (e *MissingTableError) Is(target error) bool {
	return target == ErrSchemaMissing
}

// Gateway owns the shared connection pool. Repositories run every statement
// through it with the caller's context.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// Dialect is the gorm dialector name: postgres, mysql or sqlite.
func (g *Gateway) Dialect() string {
	return g.db.Dialector.Name()
}

func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	return nil
}

func (g *Gateway) EnsureTable(ctx context.Context, table string) error {
	if !g.db.WithContext(ctx).Migrator().HasTable(table) {
		return &MissingTableError{Table: table}
	}
	return nil
}

// Check pings the database and confirms each table exists, so a store
// failure reaches the caller as ErrDatabaseUnavailable or ErrSchemaMissing.
func (g *Gateway) Check(ctx context.Context, tables ...string) error {
	if err := g.Ping(ctx); err != nil {
		return err
	}
	for _, table := range tables {
		if err := g.EnsureTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

// Diagnostics is a snapshot of schema and extension state.
type Diagnostics struct {
	CustomersTable    int64 `json:"customers_table"`
	OrdersTable       int64 `json:"orders_table"`
	PGCryptoExtension bool  `json:"pgcrypto_extension"`
}

func (g *Gateway) Diagnostics(ctx context.Context) (*Diagnostics, error) {
	if err := g.Check(ctx, "customers", "orders"); err != nil {
		return nil, err
	}

	var d Diagnostics
	if err := g.DB(ctx).Model(&models.Customer{}).Count(&d.CustomersTable).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if err := g.DB(ctx).Model(&models.Order{}).Count(&d.OrdersTable).Error; err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if g.Dialect() == "postgres" {
		installed, err := security.PGCryptoInstalled(ctx, g.db)
		if err != nil {
			return nil, fmt.Errorf("check pgcrypto: %w", err)
		}
		d.PGCryptoExtension = installed
	}
	return &d, nil
}
