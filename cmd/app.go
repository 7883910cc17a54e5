package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/Kariqs/orders-api/controllers"
	"github.com/Kariqs/orders-api/initializers"
	"github.com/Kariqs/orders-api/middlewares"
	"github.com/Kariqs/orders-api/repository"
	"github.com/Kariqs/orders-api/routes"
	"github.com/Kariqs/orders-api/security"
	"github.com/Kariqs/orders-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newFieldCipher(cfg *initializers.Config, db *gorm.DB) (security.Cipher, error) {
	if cfg.FieldCipher == initializers.CipherPGCrypto {
		return security.NewPGCrypto(db, cfg.CryptoKey)
	}
	return security.NewXChaCha(cfg.CryptoKey)
}

// buildServer wires every component from cfg. The returned cleanup closes
// whatever connections the wiring opened besides db.
func buildServer(ctx context.Context, cfg *initializers.Config, db *gorm.DB) (*gin.Engine, func(), error) {
	cipher, err := newFieldCipher(cfg, db)
	if err != nil {
		return nil, nil, fmt.Errorf("field cipher: %w", err)
	}

	archiver, metrics, err := services.NewAuditSinks(ctx, cfg.AWSRegion, cfg.WebhookArchiveBucket, cfg.MetricsNamespace)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var events services.EventPublisher = services.NopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher, err := services.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		events = publisher
		cleanup = func() {
			if err := publisher.Close(); err != nil {
				log.Printf("Failed to close Kafka producer: %v", err)
			}
		}
	}

	var verifier services.TransactionVerifier
	if cfg.PaystackVerifyTransactions {
		verifier = services.NewPaystackClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey)
	}
	if cfg.PaystackSecretKey == "" {
		log.Println("PAYSTACK_SECRET_KEY not set - all webhooks will be rejected")
	}

	var auth middlewares.Authenticator
	if cfg.AuthEnabled {
		jwtAuth, err := middlewares.NewJWTAuthenticator(cfg.JWTSecret)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		auth = jwtAuth
	}

	gateway := repository.NewGateway(db)
	auditLog := services.NewAuditLog(repository.NewAuditRepository(gateway), archiver, metrics)
	customerRepo := repository.NewCustomerRepository(gateway, cipher, auditLog)
	orderRepo := repository.NewOrderRepository(gateway)

	server := routes.NewServer(routes.Dependencies{
		Orders:    controllers.NewOrderController(services.NewOrderService(customerRepo, orderRepo, events)),
		Customers: controllers.NewCustomerController(services.NewCustomerService(customerRepo)),
		Webhooks: controllers.NewWebhookController(
			services.NewWebhookReconciler(cfg.PaystackSecretKey, orderRepo, verifier, auditLog, events),
		),
		Default: controllers.NewDefaultController(gateway, map[string]bool{
			"DATABASE_URL":  cfg.DatabaseURL != "",
			"PG_CRYPTO_KEY": !cfg.UsingDefaultKey,
		}),
		Authenticator: auth,
		CORSOrigins:   cfg.AllowedOrigins(),
	})
	return server, cleanup, nil
}
