package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Kariqs/orders-api/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const MetricFieldEncryptionFallback = "FieldEncryptionFallback"

// Archiver keeps a copy of a raw webhook payload outside the database.
type Archiver interface {
	Archive(ctx context.Context, payload []byte) (string, error)
}

// FallbackMetrics counts sensitive fields written without encryption.
type FallbackMetrics interface {
	CountFallback(ctx context.Context, field string) error
}

// S3Uploader is satisfied by *manager.Uploader.
type S3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3Archiver struct {
	uploader S3Uploader
	bucket   string
	nowFunc  func() time.Time
}

func NewS3Archiver(uploader S3Uploader, bucket string) *S3Archiver {
	return &S3Archiver{uploader: uploader, bucket: bucket, nowFunc: time.Now}
}

// Archive uploads payload under webhooks/<yyyy>/<mm>/<dd>/<uuid>.json and
// returns the object key.
func (a *S3Archiver) Archive(ctx context.Context, payload []byte) (string, error) {
	key := fmt.Sprintf("webhooks/%s/%s.json", a.nowFunc().UTC().Format("2006/01/02"), uuid.NewString())

	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// CloudWatchAPI is the subset of *cloudwatch.Client used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type CloudWatchMetrics struct {
	client    CloudWatchAPI
	namespace string
}

func NewCloudWatchMetrics(client CloudWatchAPI, namespace string) *CloudWatchMetrics {
	return &CloudWatchMetrics{client: client, namespace: namespace}
}

func (m *CloudWatchMetrics) CountFallback(ctx context.Context, field string) error {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: aws.String(MetricFieldEncryptionFallback),
				Dimensions: []cwtypes.Dimension{
					{Name: aws.String("Field"), Value: aws.String(field)},
				},
				Unit:      cwtypes.StandardUnitCount,
				Value:     aws.Float64(1),
				Timestamp: aws.Time(time.Now()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric %s: %w", MetricFieldEncryptionFallback, err)
	}
	return nil
}

// AuditLog records webhook events that changed nothing and fields stored
// without encryption. Every sink is best-effort: failures are logged and
// never reach the caller. archiver and metrics may be nil.
type AuditLog struct {
	store    AuditStore
	archiver Archiver
	metrics  FallbackMetrics
}

func NewAuditLog(store AuditStore, archiver Archiver, metrics FallbackMetrics) *AuditLog {
	return &AuditLog{store: store, archiver: archiver, metrics: metrics}
}

func (a *AuditLog) RecordUnhandledWebhook(ctx context.Context, reference string, payload []byte) {
	log.Printf("Failed transaction: %s", payload)

	if a.archiver != nil {
		key, err := a.archiver.Archive(ctx, payload)
		if err != nil {
			log.Printf("Failed to archive webhook payload: %v", err)
		} else {
			log.Printf("Webhook payload archived to %s", key)
		}
	}

	if err := a.store.Record(ctx, models.AuditKindWebhookUnhandled, reference, payload); err != nil {
		log.Printf("Failed to record unhandled webhook: %v", err)
	}
}

// RecordCipherFallback implements repository.CipherFallbackRecorder.
func (a *AuditLog) RecordCipherFallback(ctx context.Context, field, email string, cause error) {
	payload, err := json.Marshal(map[string]string{"field": field, "error": cause.Error()})
	if err != nil {
		log.Printf("Failed to encode cipher fallback: %v", err)
		return
	}
	if err := a.store.Record(ctx, models.AuditKindCipherFallback, email, payload); err != nil {
		log.Printf("Failed to record cipher fallback: %v", err)
	}

	if a.metrics != nil {
		if err := a.metrics.CountFallback(ctx, field); err != nil {
			log.Printf("Failed to publish fallback metric: %v", err)
		}
	}
}
