package services

import (
	"context"

	"github.com/Kariqs/orders-api/models"
)

type CustomerService struct {
	customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.CustomerView, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*models.CustomerView, error) {
	return s.customers.Get(ctx, id)
}
