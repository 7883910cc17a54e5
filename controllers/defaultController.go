package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Kariqs/orders-api/repository"
	"github.com/gin-gonic/gin"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
	Diagnostics(ctx context.Context) (*repository.Diagnostics, error)
}

type DefaultController struct {
	db HealthChecker
	// setting name -> whether it was configured
	settings map[string]bool
}

func NewDefaultController(db HealthChecker, settings map[string]bool) *DefaultController {
	return &DefaultController{db: db, settings: settings}
}

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Orders API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

HEALTH
- GET "/api/health" - Database connectivity and configuration status
- GET "/api/test-db" - Table row counts and pgcrypto status

ORDERS
- POST "/api/orders" - Place an order
- GET "/api/orders?status=" - Get all orders, optionally by status
- PATCH "/api/orders/:id/status" - Update order status
- GET "/api/orders/customer/:id" - Get orders for a customer

CUSTOMERS
- GET "/api/customers" - Get all customers
- GET "/api/customers/:id" - Get customer by ID

WEBHOOKS
- POST "/api/webhooks/paystack" - Paystack payment events`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func (c *DefaultController) Health(ctx *gin.Context) {
	if err := c.db.Ping(ctx.Request.Context()); err != nil {
		log.Println(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status":   "error",
			"error":    err.Error(),
			"database": "disconnected",
		})
		return
	}

	envVars := gin.H{}
	for name, set := range c.settings {
		if set {
			envVars[name] = "set"
		} else {
			envVars[name] = "not set"
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"database":  "connected",
		"env_vars":  envVars,
	})
}

func (c *DefaultController) TestDB(ctx *gin.Context) {
	d, err := c.db.Diagnostics(ctx.Request.Context())
	if err != nil {
		log.Println(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":  err.Error(),
			"status": "error",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"customers_table":    d.CustomersTable,
		"orders_table":       d.OrdersTable,
		"pgcrypto_extension": d.PGCryptoExtension,
		"status":             "ok",
	})
}
