package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/orders-api/services"
	"github.com/gin-gonic/gin"
)

const PaystackSignatureHeader = "x-paystack-signature"

type WebhookReconciler interface {
	Handle(ctx context.Context, body []byte, signature string) error
}

type WebhookController struct {
	reconciler WebhookReconciler
}

func NewWebhookController(reconciler WebhookReconciler) *WebhookController {
	return &WebhookController{reconciler: reconciler}
}

// HandlePaystackWebhook passes the body through untouched: the signature is
// computed over the exact bytes Paystack sent.
func (c *WebhookController) HandlePaystackWebhook(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendErrorResponse(ctx, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	err = c.reconciler.Handle(ctx.Request.Context(), body, ctx.GetHeader(PaystackSignatureHeader))
	if errors.Is(err, services.ErrInvalidSignature) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidSignature)
		return
	}
	if err != nil {
		log.Printf("Webhook processing failed: %v", err)
		respondWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
