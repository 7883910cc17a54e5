package services

import (
	"context"
	"encoding/json"

	"github.com/Kariqs/orders-api/models"
	"gorm.io/datatypes"
)

// CustomerStore is the subset of repository.CustomerRepository the services use.
type CustomerStore interface {
	Upsert(ctx context.Context, name, email, phone string, address json.RawMessage) (uint, error)
	List(ctx context.Context) ([]models.CustomerView, error)
	Get(ctx context.Context, id uint) (*models.CustomerView, error)
}

// OrderStore is the subset of repository.OrderRepository the services use.
type OrderStore interface {
	Create(ctx context.Context, customerID uint, items datatypes.JSON, total float64, paymentReference string) (*models.Order, error)
	List(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	UpdateStatusByReference(ctx context.Context, reference, status string) (int64, error)
	FindByReference(ctx context.Context, reference string) ([]models.Order, error)
}

type AuditStore interface {
	Record(ctx context.Context, kind, reference string, payload []byte) error
}
