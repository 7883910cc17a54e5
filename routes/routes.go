package routes

import (
	"time"

	"github.com/Kariqs/orders-api/controllers"
	"github.com/Kariqs/orders-api/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const MaxBodyBytes = 1 << 20

// Dependencies is everything the HTTP layer needs. A nil Authenticator
// registers the protected routes without auth.
type Dependencies struct {
	Orders        *controllers.OrderController
	Customers     *controllers.CustomerController
	Webhooks      *controllers.WebhookController
	Default       *controllers.DefaultController
	Authenticator middlewares.Authenticator
	CORSOrigins   []string
}

func NewServer(deps Dependencies) *gin.Engine {
	server := gin.New()
	server.Use(gin.Logger(), gin.Recovery(), middlewares.RequestID())
	corsConfig := cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(deps.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	server.Use(cors.New(corsConfig))
	server.Use(middlewares.BodyLimit(MaxBodyBytes))

	var guard []gin.HandlerFunc
	if deps.Authenticator != nil {
		guard = []gin.HandlerFunc{
			middlewares.RequireAuth(deps.Authenticator),
			middlewares.RequireAdmin(deps.Authenticator),
		}
	}

	DefaultRoutes(server, deps.Default)
	api := server.Group("/api")
	OrderRoutes(api, deps.Orders, guard...)
	CustomerRoutes(api, deps.Customers, guard...)
	WebhookRoutes(api, deps.Webhooks)
	return server
}
