package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Kariqs/orders-api/models"
	"github.com/Kariqs/orders-api/security"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CipherFallbackRecorder is told whenever a sensitive field is written
// without encryption.
type CipherFallbackRecorder interface {
	RecordCipherFallback(ctx context.Context, field, email string, cause error)
}

type CustomerRepository struct {
	gateway  *Gateway
	cipher   security.Cipher
	fallback CipherFallbackRecorder
}

func NewCustomerRepository(gateway *Gateway, cipher security.Cipher, fallback CipherFallbackRecorder) *CustomerRepository {
	return &CustomerRepository{gateway: gateway, cipher: cipher, fallback: fallback}
}

type customerRow struct {
	ID          uint
	Name        string
	Email       string
	Phone       *string
	Address     *string
	CreatedAt   time.Time
	TotalOrders int64
}

// Upsert inserts the customer or, when the email already exists, updates the
// name only. The address is stored as the JSON text given. It returns the id
// of the row holding that email.
func (r *CustomerRepository) Upsert(ctx context.Context, name, email, phone string, address json.RawMessage) (uint, error) {
	if err := r.gateway.Check(ctx, "customers"); err != nil {
		return 0, err
	}

	storedPhone := r.seal(ctx, "phone", email, phone)
	storedAddress := r.seal(ctx, "address", email, string(address))

	customer := models.Customer{
		Name:    name,
		Email:   email,
		Phone:   &storedPhone,
		Address: &storedAddress,
	}
	err := r.gateway.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&customer).Error
	if err != nil {
		return 0, fmt.Errorf("upsert customer: %w", err)
	}

	// Re-read by email: on conflict not every driver reports the existing id.
	var existing models.Customer
	if err := r.gateway.DB(ctx).Select("id").Where("email = ?", email).Take(&existing).Error; err != nil {
		return 0, fmt.Errorf("load customer id: %w", err)
	}
	return existing.ID, nil
}

// seal encrypts value, storing it as plaintext if the cipher fails.
func (r *CustomerRepository) seal(ctx context.Context, field, email, value string) string {
	sealed, err := r.cipher.Encrypt(ctx, value)
	if err == nil {
		return sealed
	}
	log.Printf("Encryption error, storing %s without encryption: %v", field, err)
	if r.fallback != nil {
		r.fallback.RecordCipherFallback(ctx, field, email, err)
	}
	return value
}

// List returns every customer, newest first, with sensitive fields revealed
// where possible and the number of orders each has placed.
func (r *CustomerRepository) List(ctx context.Context) ([]models.CustomerView, error) {
	if err := r.gateway.Check(ctx, "customers", "orders"); err != nil {
		return nil, err
	}

	var rows []customerRow
	err := r.aggregate(ctx).
		Order("c.created_at DESC").
		Order("c.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	decrypt := r.canDecrypt(ctx)
	customers := make([]models.CustomerView, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, r.view(ctx, row, decrypt))
	}
	return customers, nil
}

func (r *CustomerRepository) Get(ctx context.Context, id uint) (*models.CustomerView, error) {
	if err := r.gateway.Check(ctx, "customers", "orders"); err != nil {
		return nil, err
	}

	var rows []customerRow
	err := r.aggregate(ctx).
		Where("c.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrCustomerNotFound
	}

	view := r.view(ctx, rows[0], r.canDecrypt(ctx))
	return &view, nil
}

func (r *CustomerRepository) aggregate(ctx context.Context) *gorm.DB {
	return r.gateway.DB(ctx).
		Table("customers AS c").
		Select("c.id, c.name, c.email, c.phone, c.address, c.created_at, COUNT(o.id) AS total_orders").
		Joins("LEFT JOIN orders AS o ON o.customer_id = c.id").
		Group("c.id, c.name, c.email, c.phone, c.address, c.created_at")
}

func (r *CustomerRepository) canDecrypt(ctx context.Context) bool {
	if err := r.cipher.Ready(ctx); err != nil {
		log.Printf("Decryption failed, returning customers without decryption: %v", err)
		return false
	}
	return true
}

func (r *CustomerRepository) view(ctx context.Context, row customerRow, decrypt bool) models.CustomerView {
	reveal := func(stored string) string {
		if decrypt {
			return security.Reveal(ctx, r.cipher, stored)
		}
		return security.RevealRaw(r.cipher, stored)
	}

	view := models.CustomerView{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		CreatedAt:   row.CreatedAt,
		TotalOrders: row.TotalOrders,
	}
	if row.Phone != nil && *row.Phone != "" {
		view.Phone = reveal(*row.Phone)
	}
	if row.Address != nil && *row.Address != "" {
		view.Address = security.DecodeAddress(reveal(*row.Address))
	}
	return view
}
