package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Kariqs/orders-api/models"
	"github.com/Kariqs/orders-api/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "sk_test_secret"

type reconcilerFixture struct {
	orders   *MockOrderStore
	audit    *MockWebhookAuditor
	events   *MockEventPublisher
	verifier *MockVerifier
}

func newReconcilerFixture() *reconcilerFixture {
	return &reconcilerFixture{
		orders:   new(MockOrderStore),
		audit:    new(MockWebhookAuditor),
		events:   new(MockEventPublisher),
		verifier: new(MockVerifier),
	}
}

func (f *reconcilerFixture) reconciler(verify bool) *WebhookReconciler {
	var verifier TransactionVerifier
	if verify {
		verifier = f.verifier
	}
	return NewWebhookReconciler(testWebhookSecret, f.orders, verifier, f.audit, f.events)
}

func signed(body string) ([]byte, string) {
	return []byte(body), security.SignPayload(testWebhookSecret, []byte(body))
}

func TestChargeSuccessMarksOrdersPaid(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{"reference":"ref_1","status":"success"}}`)

	ref := "ref_1"
	f.orders.On("UpdateStatusByReference", ctx, "ref_1", models.OrderStatusPaid).Return(int64(1), nil)
	f.orders.On("FindByReference", ctx, "ref_1").Return([]models.Order{{ID: 9, Status: models.OrderStatusPaid, PaymentReference: &ref}}, nil)
	f.events.On("Publish", ctx, mock.MatchedBy(func(e OrderEvent) bool {
		return e.Type == EventOrderPaid && e.OrderID == 9
	})).Return(nil)

	require.NoError(t, f.reconciler(false).Handle(ctx, body, sig))

	f.orders.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.audit.AssertNotCalled(t, "RecordUnhandledWebhook", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvalidSignatureChangesNothing(t *testing.T) {
	f := newReconcilerFixture()
	body, _ := signed(`{"event":"charge.success","data":{"reference":"ref_1"}}`)

	for _, sig := range []string{"", "deadbeef", security.SignPayload("other", body)} {
		err := f.reconciler(false).Handle(context.Background(), body, sig)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	}
	f.orders.AssertNotCalled(t, "UpdateStatusByReference", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmptySecretRejectsEverything(t *testing.T) {
	f := newReconcilerFixture()
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	r := NewWebhookReconciler("", f.orders, nil, f.audit, nil)

	err := r.Handle(context.Background(), body, security.SignPayload("", body))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSignatureCoversRawBytes(t *testing.T) {
	f := newReconcilerFixture()
	// Same JSON value, different bytes than what was signed.
	_, sig := signed(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	body := []byte(`{"event": "charge.success", "data": {"reference": "ref_1"}}`)

	err := f.reconciler(false).Handle(context.Background(), body, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestOtherEventsAreAudited(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.failed","data":{"reference":"ref_2"}}`)
	f.audit.On("RecordUnhandledWebhook", ctx, "ref_2", body).Return()

	require.NoError(t, f.reconciler(false).Handle(ctx, body, sig))

	f.audit.AssertExpectations(t)
	f.orders.AssertNotCalled(t, "UpdateStatusByReference", mock.Anything, mock.Anything, mock.Anything)
}

func TestChargeSuccessWithoutReferenceIsAudited(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{}}`)
	f.audit.On("RecordUnhandledWebhook", ctx, "", body).Return()

	require.NoError(t, f.reconciler(false).Handle(ctx, body, sig))
	f.audit.AssertExpectations(t)
}

func TestMalformedPayloadIsAcknowledged(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":`)
	f.audit.On("RecordUnhandledWebhook", ctx, "", body).Return()

	require.NoError(t, f.reconciler(false).Handle(ctx, body, sig))
	f.audit.AssertExpectations(t)
}

func TestUnknownReferenceIsAcknowledged(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{"reference":"ref_missing"}}`)
	f.orders.On("UpdateStatusByReference", ctx, "ref_missing", models.OrderStatusPaid).Return(int64(0), nil)

	require.NoError(t, f.reconciler(false).Handle(ctx, body, sig))
	f.orders.AssertNotCalled(t, "FindByReference", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestStoreFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	f.orders.On("UpdateStatusByReference", ctx, "ref_1", models.OrderStatusPaid).Return(int64(0), errors.New("connection refused"))

	err := f.reconciler(false).Handle(ctx, body, sig)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifiedTransactionMarksPaid(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	f.verifier.On("Verify", ctx, "ref_1").Return(&Transaction{Reference: "ref_1", Status: "success"}, nil)
	f.orders.On("UpdateStatusByReference", ctx, "ref_1", models.OrderStatusPaid).Return(int64(1), nil)
	f.orders.On("FindByReference", ctx, "ref_1").Return([]models.Order{}, nil)

	require.NoError(t, f.reconciler(true).Handle(ctx, body, sig))
	f.verifier.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestUnconfirmedTransactionIsAudited(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	f.verifier.On("Verify", ctx, "ref_1").Return(&Transaction{Reference: "ref_1", Status: "abandoned"}, nil)
	f.audit.On("RecordUnhandledWebhook", ctx, "ref_1", body).Return()

	require.NoError(t, f.reconciler(true).Handle(ctx, body, sig))
	f.audit.AssertExpectations(t)
	f.orders.AssertNotCalled(t, "UpdateStatusByReference", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationOutageIsReturned(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	body, sig := signed(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	f.verifier.On("Verify", ctx, "ref_1").Return(nil, ErrVerificationUnavailable)

	err := f.reconciler(true).Handle(ctx, body, sig)
	assert.ErrorIs(t, err, ErrVerificationUnavailable)
}
