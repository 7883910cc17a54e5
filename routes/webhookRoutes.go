package routes

import (
	"github.com/Kariqs/orders-api/controllers"
	"github.com/gin-gonic/gin"
)

func WebhookRoutes(api *gin.RouterGroup, c *controllers.WebhookController) {
	api.POST("/webhooks/paystack", c.HandlePaystackWebhook)
}
