package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusFailed     = "failed"
)

// OrderStatuses lists every status an order may be moved to.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusFailed,
}

// IsOrderStatus reports whether s is a known order status.
func IsOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	CustomerID       uint           `json:"customer_id" gorm:"not null;index"`
	Customer         *Customer      `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items            datatypes.JSON `json:"items" gorm:"not null"`
	Total            float64        `json:"total" gorm:"type:numeric(12,2);not null"`
	PaymentReference *string        `json:"payment_reference" gorm:"size:128;index"`
	Status           string         `json:"status" gorm:"size:32;not null;default:pending;index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Populated by list queries that join customers.
	CustomerName string `json:"customer_name,omitempty" gorm:"->;-:migration"`
}
