package dto

import (
	"encoding/json"
	"time"
)

// ArchiveRequest archiva (borrado suave) un registro identificado por su tipo
// y su id numérico original.
type ArchiveRequest struct {
	EntityType  string `json:"entity_type" validate:"required"`
	EntityID    int64  `json:"entity_id" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"max=500"`
	DisplayName string `json:"display_name" validate:"max=200"`
}

// ArchiveResponse un sobre de archivo.
type ArchiveResponse struct {
	ID          int64           `json:"id"`
	EntityType  string          `json:"entity_type"`
	EntityID    int64           `json:"entity_id"`
	Snapshot    json.RawMessage `json:"snapshot,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	DisplayName string          `json:"display_name"`
	ArchivedBy  *int64          `json:"archived_by,omitempty"`
	ArchivedAt  time.Time       `json:"archived_at"`
}

// ArchiveListResponse listado paginado del navegador de archivo.
type ArchiveListResponse struct {
	Items []ArchiveResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
