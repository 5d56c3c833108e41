package entity

import (
	"encoding/json"
	"time"
)

// Archive es el sobre genérico de borrado suave: una instantánea serializada
// de cualquier registro archivable, restaurable conservando su id original.
// EntityType + EntityID son una referencia débil; la fila original ya no existe.
type Archive struct {
	ID          int64
	EntityType  string
	EntityID    int64
	Snapshot    json.RawMessage
	Reason      string
	DisplayName string
	ArchivedBy  *int64
	ArchivedAt  time.Time
}
