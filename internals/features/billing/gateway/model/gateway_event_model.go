package model

import (
	"time"

	"gorm.io/datatypes"
)

/* ===================== Enums (string) ===================== */

const (
	GatewayEventStatusReceived  = "received"
	GatewayEventStatusProcessed = "processed"
	GatewayEventStatusFailed    = "failed"
)

/* ===================== Model ===================== */

// GatewayEvent = log audit notifikasi Midtrans yang masuk. Payload mentah
// disimpan apa adanya (JSONB) supaya rekonsiliasi yang gagal bisa ditelusuri;
// unique index (order_id, type) menahan duplikat delivery yang identik.
type GatewayEvent struct {
	GatewayEventID uint `gorm:"column:gateway_event_id;primaryKey;autoIncrement" json:"gateway_event_id"`

	GatewayEventBillID *uint `gorm:"column:gateway_event_bill_id;index" json:"gateway_event_bill_id,omitempty"`

	GatewayEventOrderID       string  `gorm:"column:gateway_event_order_id;not null;uniqueIndex:uq_gateway_event_order_type,priority:1" json:"gateway_event_order_id"`
	GatewayEventType          string  `gorm:"column:gateway_event_type;type:varchar(24);not null;uniqueIndex:uq_gateway_event_order_type,priority:2" json:"gateway_event_type"` // transaction_status
	GatewayEventTransactionID *string `gorm:"column:gateway_event_transaction_id" json:"gateway_event_transaction_id,omitempty"`
	GatewayEventSignature     *string `gorm:"column:gateway_event_signature" json:"gateway_event_signature,omitempty"`

	GatewayEventPayload datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload,omitempty"`
	GatewayEventHeaders datatypes.JSON `gorm:"column:gateway_event_headers;type:jsonb" json:"gateway_event_headers,omitempty"`

	GatewayEventIdempotencyKey string  `gorm:"column:gateway_event_idempotency_key;type:uuid" json:"gateway_event_idempotency_key"`
	GatewayEventStatus         string  `gorm:"column:gateway_event_status;type:varchar(16);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError          *string `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	CreatedAt               time.Time  `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (GatewayEvent) TableName() string { return "payment_gateway_event" }
