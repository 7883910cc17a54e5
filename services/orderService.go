package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Kariqs/orders-api/models"
	validatorv10 "github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

var (
	ErrValidation    = errors.New("missing required fields")
	ErrInvalidStatus = errors.New("invalid order status")
)

// CreateOrderRequest is the body of POST /api/orders. Address and Items are
// kept as raw JSON: the address is stored as given and items are opaque.
type CreateOrderRequest struct {
	Email            string          `json:"email" validate:"required"`
	Name             string          `json:"name" validate:"required"`
	Phone            string          `json:"phone" validate:"required"`
	Address          json.RawMessage `json:"address"`
	Items            json.RawMessage `json:"items"`
	Total            float64         `json:"total" validate:"gt=0"`
	PaymentReference string          `json:"payment_reference"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// NewValidator returns a validator with the order request rules registered.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})
	return v
}

// createOrderStructValidation rejects an address or items that are absent,
// null or an empty value.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	if blankJSON(req.Address) {
		sl.ReportError(req.Address, "address", "Address", "required", "")
	}
	if blankJSON(req.Items) {
		sl.ReportError(req.Items, "items", "Items", "required", "")
	}
}

func blankJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `""`, "false", "0":
		return true
	}
	return false
}

// OrderService places orders and moves them through their statuses.
type OrderService struct {
	customers CustomerStore
	orders    OrderStore
	events    EventPublisher
	validate  *validatorv10.Validate
}

func NewOrderService(customers CustomerStore, orders OrderStore, events EventPublisher) *OrderService {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderService{
		customers: customers,
		orders:    orders,
		events:    events,
		validate:  NewValidator(),
	}
}

// PlaceOrder upserts the customer by email and creates a pending order for
// them. Nothing is written when the request is incomplete.
func (s *OrderService) PlaceOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		log.Printf("Missing required fields: %v", err)
		return nil, ErrValidation
	}

	var address bytes.Buffer
	if err := json.Compact(&address, req.Address); err != nil {
		return nil, fmt.Errorf("%w: address is not valid JSON", ErrValidation)
	}
	if !json.Valid(req.Items) {
		return nil, fmt.Errorf("%w: items is not valid JSON", ErrValidation)
	}

	customerID, err := s.customers.Upsert(ctx, req.Name, req.Email, req.Phone, json.RawMessage(address.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}

	order, err := s.orders.Create(ctx, customerID, datatypes.JSON(req.Items), req.Total, req.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	log.Printf("Order created with ID: %d", order.ID)

	s.publish(ctx, EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	return s.orders.List(ctx, strings.TrimSpace(status))
}

// UpdateOrderStatus moves an order to one of the known statuses.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: status is required", ErrInvalidStatus)
	}
	if !models.IsOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	order, err := s.orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderStatusChanged, order)
	return order, nil
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if err := s.events.Publish(ctx, NewOrderEvent(eventType, order)); err != nil {
		log.Printf("Failed to publish %s for order %d: %v", eventType, order.ID, err)
	}
}
