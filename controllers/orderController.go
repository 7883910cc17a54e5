package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/Kariqs/orders-api/models"
	"github.com/Kariqs/orders-api/services"
	"github.com/gin-gonic/gin"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req services.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context, status string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, req services.UpdateStatusRequest) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uint) ([]models.Order, error)
}

type OrderController struct {
	orders OrderService
}

func NewOrderController(orders OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	order, err := c.orders.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, order)
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	orders, err := c.orders.ListOrders(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, orders)
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req services.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	order, err := c.orders.UpdateOrderStatus(ctx.Request.Context(), id, req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *OrderController) GetCustomerOrders(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	orders, err := c.orders.ListCustomerOrders(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, orders)
}
