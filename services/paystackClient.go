package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultPaystackBaseURL = "https://api.paystack.co"

var ErrVerificationUnavailable = errors.New("paystack verification unavailable")

// Transaction is the part of a Paystack transaction the reconciler checks.
type Transaction struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

func (t *Transaction) Succeeded() bool {
	return t != nil && t.Status == "success"
}

// TransactionVerifier confirms a payment with the provider before the order
// is marked paid.
type TransactionVerifier interface {
	Verify(ctx context.Context, reference string) (*Transaction, error)
}

type verifyResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

type PaystackClient struct {
	client *resty.Client
}

func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	if baseURL == "" {
		baseURL = DefaultPaystackBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetAuthToken(secretKey).
		SetHeader("Accept", "application/json")
	return &PaystackClient{client: client}
}

// Verify looks a transaction up by reference.
func (p *PaystackClient) Verify(ctx context.Context, reference string) (*Transaction, error) {
	var body verifyResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("reference", reference).
		SetResult(&body).
		Get("/transaction/verify/{reference}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrVerificationUnavailable, resp.StatusCode())
	}
	if resp.StatusCode() != http.StatusOK || !body.Status {
		// Unknown references come back as 400 with status false.
		return &Transaction{Reference: reference, Status: "not_found"}, nil
	}
	return &body.Data, nil
}
