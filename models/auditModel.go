package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditKindWebhookUnhandled = "webhook_unhandled"
	AuditKindCipherFallback   = "cipher_fallback"
)

// AuditEvent is an append-only record of things operators may need to replay
// or investigate: webhook events that changed nothing and sensitive fields
// written without encryption.
type AuditEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Kind      string         `json:"kind" gorm:"size:64;not null;index"`
	Reference string         `json:"reference" gorm:"size:128;index"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
