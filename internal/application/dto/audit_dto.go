package dto

import (
	"encoding/json"
	"time"
)

// AuditQueryRequest filtros de consulta del registro de auditoría.
// Siempre se responde de más reciente a más antigua y con límite acotado.
type AuditQueryRequest struct {
	From       *time.Time `query:"from"`
	To         *time.Time `query:"to"`
	Action     string     `query:"action"`
	EntityType string     `query:"entity_type"`
	Severity   string     `query:"severity" validate:"omitempty,oneof=info warning error critical"`
	UserID     *int64     `query:"user_id"`
	Limit      int        `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset     int        `query:"offset" validate:"omitempty,min=0"`
}

// AuditLogResponse una entrada de auditoría.
type AuditLogResponse struct {
	ID            int64           `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Action        string          `json:"action"`
	EntityType    string          `json:"entity_type"`
	EntityID      *int64          `json:"entity_id,omitempty"`
	UserID        *int64          `json:"user_id,omitempty"`
	Severity      string          `json:"severity"`
	Success       bool            `json:"success"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	OldValues     json.RawMessage `json:"old_values,omitempty"`
	NewValues     json.RawMessage `json:"new_values,omitempty"`
	Description   string          `json:"description,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}
