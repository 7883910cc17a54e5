package routes

import (
	"github.com/Kariqs/orders-api/controllers"
	"github.com/gin-gonic/gin"
)

// OrderRoutes registers /orders. Placing an order is always public; guard
// applies to the rest.
func OrderRoutes(api *gin.RouterGroup, c *controllers.OrderController, guard ...gin.HandlerFunc) {
	orders := api.Group("/orders")
	orders.POST("", c.CreateOrder)

	protected := orders.Group("", guard...)
	{
		protected.GET("", c.GetOrders)
		protected.PATCH("/:id/status", c.UpdateOrderStatus)
		protected.GET("/customer/:id", c.GetCustomerOrders)
	}
}
