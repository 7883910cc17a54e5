package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Kariqs/orders-api/models"
	"github.com/Kariqs/orders-api/security"
)

const EventChargeSuccess = "charge.success"

var ErrInvalidSignature = errors.New("invalid signature")

type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// WebhookAuditor receives events the reconciler acknowledges without acting on.
type WebhookAuditor interface {
	RecordUnhandledWebhook(ctx context.Context, reference string, payload []byte)
}

// WebhookReconciler applies Paystack payment events to orders.
type WebhookReconciler struct {
	secret   string
	orders   OrderStore
	verifier TransactionVerifier
	audit    WebhookAuditor
	events   EventPublisher
}

// NewWebhookReconciler builds a reconciler. verifier may be nil, in which case
// charge.success events are trusted once their signature checks out.
func NewWebhookReconciler(secret string, orders OrderStore, verifier TransactionVerifier, audit WebhookAuditor, events EventPublisher) *WebhookReconciler {
	if events == nil {
		events = NopPublisher{}
	}
	return &WebhookReconciler{
		secret:   secret,
		orders:   orders,
		verifier: verifier,
		audit:    audit,
		events:   events,
	}
}

// Handle authenticates body against signature and reconciles the event.
// Only ErrInvalidSignature and store failures are returned; every other
// outcome is acknowledged.
func (r *WebhookReconciler) Handle(ctx context.Context, body []byte, signature string) error {
	if !security.VerifySignature(r.secret, body, signature) {
		return ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Malformed webhook payload: %v", err)
		r.audit.RecordUnhandledWebhook(ctx, "", body)
		return nil
	}

	reference := event.Data.Reference
	if event.Event != EventChargeSuccess || reference == "" {
		r.audit.RecordUnhandledWebhook(ctx, reference, body)
		return nil
	}

	if r.verifier != nil {
		tx, err := r.verifier.Verify(ctx, reference)
		if err != nil {
			return fmt.Errorf("verify transaction %s: %w", reference, err)
		}
		if !tx.Succeeded() {
			log.Printf("Transaction %s not confirmed by Paystack (status %s)", reference, tx.Status)
			r.audit.RecordUnhandledWebhook(ctx, reference, body)
			return nil
		}
	}

	updated, err := r.orders.UpdateStatusByReference(ctx, reference, models.OrderStatusPaid)
	if err != nil {
		return fmt.Errorf("mark orders paid for %s: %w", reference, err)
	}
	if updated == 0 {
		log.Printf("No order found for payment reference %s", reference)
		return nil
	}

	orders, err := r.orders.FindByReference(ctx, reference)
	if err != nil {
		log.Printf("Failed to load paid orders for %s: %v", reference, err)
		return nil
	}
	for i := range orders {
		if err := r.events.Publish(ctx, NewOrderEvent(EventOrderPaid, &orders[i])); err != nil {
			log.Printf("Failed to publish %s for order %d: %v", EventOrderPaid, orders[i].ID, err)
		}
	}
	return nil
}
