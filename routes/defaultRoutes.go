package routes

import (
	"github.com/Kariqs/orders-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, c *controllers.DefaultController) {
	server.GET("/", controllers.GetHome)
	server.GET("/api/health", c.Health)
	server.GET("/api/test-db", c.TestDB)
}
