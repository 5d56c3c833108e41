package archive

import (
	"context"
	"encoding/json"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
)

// Store es el puerto transaccional del archivo genérico. Run garantiza que
// instantánea, sobre y borrado/reinserción se confirmen juntos o ninguno.
type Store interface {
	Run(ctx context.Context, fn func(tx Tx) error) error
}

// Tx operaciones disponibles dentro de una transacción de archivo.
// La implementación resuelve cada tipo archivable mediante un registro
// explícito (tag -> serializar/deserializar/tabla/llave), sin reflexión.
type Tx interface {
	// Snapshot localiza el registro por tipo e id, ignorando filtros de
	// activo, y devuelve su instantánea JSON y un nombre a mostrar derivado.
	// domain.ErrInvalidInput si el tipo no está registrado;
	// domain.ErrNotFound si la fila no existe.
	Snapshot(entityType string, id int64) (snapshot json.RawMessage, displayName string, err error)
	// DeleteEntity borra únicamente la fila original; el comportamiento de
	// los FK dependientes es asunto del esquema, no de este servicio.
	DeleteEntity(entityType string, id int64) error
	// RestoreEntity reinserta conservando la identidad numérica original, o
	// actualiza en sitio si una fila con ese id ya existe.
	// domain.ErrTypeMismatch si la instantánea no corresponde al tipo.
	RestoreEntity(entityType string, snapshot json.RawMessage) (id int64, err error)
	InsertEnvelope(archive *entity.Archive) error
	GetEnvelope(id int64) (*entity.Archive, error)
	DeleteEnvelope(id int64) error
}
