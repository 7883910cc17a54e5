package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Kariqs/orders-api/models"
	"gorm.io/datatypes"
)

type AuditRepository struct {
	gateway *Gateway
}

func NewAuditRepository(gateway *Gateway) *AuditRepository {
	return &AuditRepository{gateway: gateway}
}

// Record appends an audit event. A payload that is not valid JSON is stored
// as a JSON string so nothing is lost.
func (r *AuditRepository) Record(ctx context.Context, kind, reference string, payload []byte) error {
	if !json.Valid(payload) {
		quoted, err := json.Marshal(string(payload))
		if err != nil {
			return fmt.Errorf("quote audit payload: %w", err)
		}
		payload = quoted
	}

	event := models.AuditEvent{
		Kind:      kind,
		Reference: reference,
		Payload:   datatypes.JSON(payload),
	}
	if err := r.gateway.DB(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, kind string) ([]models.AuditEvent, error) {
	events := []models.AuditEvent{}
	query := r.gateway.DB(ctx).Order("id ASC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
