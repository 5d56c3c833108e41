package syncer

import (
	"context"
	"time"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
)

// Snapshot es el paquete de datos de referencia que la rutina "pull" vuelca
// en el espejo local en cada sincronización.
type Snapshot struct {
	Categories []*entity.Category
	Goods      []*entity.ReliefGood
	Shelters   []*entity.Shelter
	Stocks     []*entity.Stock
	PulledAt   time.Time
}

// Mirror es la réplica local de solo lectura de las tablas de referencia.
// Replace sustituye el contenido completo del espejo de forma atómica.
type Mirror interface {
	Replace(ctx context.Context, snap *Snapshot) error
}

// SpooledEntry una entrada de auditoría encolada localmente, con el id de la
// fila del spool para poder eliminarla tras subirla.
type SpooledEntry struct {
	SpoolID int64
	Log     *entity.AuditLog
}

// SpoolDrainer lado de lectura del spool local de auditoría: la rutina "push"
// sube las entradas pendientes al registro central y las elimina solo después
// de una inserción exitosa.
type SpoolDrainer interface {
	Pending(max int) ([]SpooledEntry, error)
	Remove(spoolIDs []int64) error
}

// Metrics contadores de ejecuciones de sincronización.
type Metrics interface {
	IncSyncRun(outcome string)
}
