package services

import (
	"context"
	"encoding/json"

	"github.com/Kariqs/orders-api/models"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) Upsert(ctx context.Context, name, email, phone string, address json.RawMessage) (uint, error) {
	args := m.Called(ctx, name, email, phone, address)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockCustomerStore) List(ctx context.Context) ([]models.CustomerView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CustomerView), args.Error(1)
}

func (m *MockCustomerStore) Get(ctx context.Context, id uint) (*models.CustomerView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerView), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Create(ctx context.Context, customerID uint, items datatypes.JSON, total float64, paymentReference string) (*models.Order, error) {
	args := m.Called(ctx, customerID, items, total, paymentReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) List(ctx context.Context, status string) ([]models.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateStatusByReference(ctx context.Context, reference, status string) (int64, error) {
	args := m.Called(ctx, reference, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderStore) FindByReference(ctx context.Context, reference string) ([]models.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Record(ctx context.Context, kind, reference string, payload []byte) error {
	return m.Called(ctx, kind, reference, payload).Error(0)
}

type MockWebhookAuditor struct {
	mock.Mock
}

func (m *MockWebhookAuditor) RecordUnhandledWebhook(ctx context.Context, reference string, payload []byte) {
	m.Called(ctx, reference, payload)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, reference string) (*Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transaction), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.UploadOutput), args.Error(1)
}

type MockCloudWatch struct {
	mock.Mock
}

func (m *MockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudwatch.PutMetricDataOutput), args.Error(1)
}

type MockFallbackMetrics struct {
	mock.Mock
}

func (m *MockFallbackMetrics) CountFallback(ctx context.Context, field string) error {
	return m.Called(ctx, field).Error(0)
}
