package repository

import (
	"time"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
)

// AuditFilter criterios de búsqueda del registro de auditoría.
// Limit es obligatorio para el consumidor: el adaptador lo acota y nunca
// ejecuta escaneos sin límite.
type AuditFilter struct {
	From       *time.Time
	To         *time.Time
	Action     string
	EntityType string
	Severity   string
	UserID     *int64
	Limit      int
	Offset     int
}

// AuditLogRepository define el puerto de persistencia del registro de
// auditoría. Solo-anexar: no hay Update ni Delete.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	// Search devuelve entradas ordenadas de más reciente a más antigua.
	Search(filter AuditFilter) ([]*entity.AuditLog, error)
}
