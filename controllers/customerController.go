package controllers

import (
	"context"
	"net/http"

	"github.com/Kariqs/orders-api/models"
	"github.com/gin-gonic/gin"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.CustomerView, error)
	GetCustomer(ctx context.Context, id uint) (*models.CustomerView, error)
}

type CustomerController struct {
	customers CustomerService
}

func NewCustomerController(customers CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

func (c *CustomerController) GetCustomers(ctx *gin.Context) {
	customers, err := c.customers.ListCustomers(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, customers)
}

func (c *CustomerController) GetCustomer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	customer, err := c.customers.GetCustomer(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, customer)
}
