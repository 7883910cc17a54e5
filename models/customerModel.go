package models

import "time"

// Customer is the stored row. Phone and Address hold either a cipher
// envelope or, when encryption was unavailable at write time, plaintext.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone     *string   `json:"-" gorm:"type:text"`
	Address   *string   `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	Orders    []Order   `json:"-" gorm:"foreignKey:CustomerID"`
}

// CustomerView is what callers get back: sensitive fields revealed where
// possible and the derived order count.
type CustomerView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       any       `json:"phone"`
	Address     any       `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	TotalOrders int64     `json:"total_orders"`
}
