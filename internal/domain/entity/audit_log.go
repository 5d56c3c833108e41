package entity

import (
	"encoding/json"
	"time"
)

// Severidades de una entrada de auditoría.
const (
	AuditSeverityInfo     = "info"
	AuditSeverityWarning  = "warning"
	AuditSeverityError    = "error"
	AuditSeverityCritical = "critical"
)

// AuditLog es una entrada del registro de auditoría, solo-anexar: la
// aplicación nunca la actualiza ni la borra. EntityType + EntityID referencian
// débilmente a la entidad afectada (puede ya no existir).
type AuditLog struct {
	ID            int64
	Timestamp     time.Time
	Action        string
	EntityType    string
	EntityID      *int64
	UserID        *int64
	Severity      string
	Success       bool
	ErrorMessage  string
	OldValues     json.RawMessage
	NewValues     json.RawMessage
	Description   string
	CorrelationID string
}
