package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/orders-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderRepository struct {
	gateway *Gateway
	nowFunc func() time.Time
}

func NewOrderRepository(gateway *Gateway) *OrderRepository {
	return &OrderRepository{gateway: gateway, nowFunc: time.Now}
}

// Create inserts a pending order for customerID and returns the stored row.
func (r *OrderRepository) Create(ctx context.Context, customerID uint, items datatypes.JSON, total float64, paymentReference string) (*models.Order, error) {
	if err := r.gateway.Check(ctx, "orders"); err != nil {
		return nil, err
	}

	now := r.nowFunc()
	order := models.Order{
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Status:     models.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if paymentReference != "" {
		order.PaymentReference = &paymentReference
	}

	if err := r.gateway.DB(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// List returns orders newest first with the customer's name. An empty status
// returns every order.
func (r *OrderRepository) List(ctx context.Context, status string) ([]models.Order, error) {
	if err := r.gateway.Check(ctx, "orders", "customers"); err != nil {
		return nil, err
	}

	query := r.gateway.DB(ctx).
		Table("orders AS o").
		Select("o.*, c.name AS customer_name").
		Joins("JOIN customers AS c ON c.id = o.customer_id")
	if status != "" {
		query = query.Where("o.status = ?", status)
	}

	orders := []models.Order{}
	if err := query.Order("o.created_at DESC").Order("o.id DESC").Scan(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if err := r.gateway.Check(ctx, "orders"); err != nil {
		return nil, err
	}

	result := r.gateway.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": r.nowFunc()})
	if result.Error != nil {
		return nil, fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	if err := r.gateway.DB(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	if err := r.gateway.Check(ctx, "orders"); err != nil {
		return nil, err
	}

	orders := []models.Order{}
	err := r.gateway.DB(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	return orders, nil
}

// UpdateStatusByReference moves every order carrying reference to status and
// reports how many rows changed. No match is not an error.
func (r *OrderRepository) UpdateStatusByReference(ctx context.Context, reference, status string) (int64, error) {
	if reference == "" {
		return 0, nil
	}
	if err := r.gateway.Check(ctx, "orders"); err != nil {
		return 0, err
	}
	result := r.gateway.DB(ctx).
		Model(&models.Order{}).
		Where("payment_reference = ?", reference).
		Updates(map[string]any{"status": status, "updated_at": r.nowFunc()})
	if result.Error != nil {
		return 0, fmt.Errorf("update order status by reference: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// FindByReference returns the orders carrying reference, oldest first.
func (r *OrderRepository) FindByReference(ctx context.Context, reference string) ([]models.Order, error) {
	orders := []models.Order{}
	if reference == "" {
		return orders, nil
	}
	if err := r.gateway.Check(ctx, "orders"); err != nil {
		return nil, err
	}
	err := r.gateway.DB(ctx).
		Where("payment_reference = ?", reference).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("find orders by reference: %w", err)
	}
	return orders, nil
}
