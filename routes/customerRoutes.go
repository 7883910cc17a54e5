package routes

import (
	"github.com/Kariqs/orders-api/controllers"
	"github.com/gin-gonic/gin"
)

func CustomerRoutes(api *gin.RouterGroup, c *controllers.CustomerController, guard ...gin.HandlerFunc) {
	customers := api.Group("/customers", guard...)
	{
		customers.GET("", c.GetCustomers)
		customers.GET("/:id", c.GetCustomer)
	}
}
