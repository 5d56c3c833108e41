package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para Stock.
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) y se usan dentro
// de transacciones para el read-modify-write de Quantity.
type StockRepository interface {
	Create(stock *entity.Stock) error
	GetByID(id int64) (*entity.Stock, error)
	GetByIDForUpdate(id int64) (*entity.Stock, error)
	// FindByGoodAndShelterForUpdate localiza el stock de un bien en un
	// albergue, bloqueándolo. Devuelve nil (sin error) si no existe.
	FindByGoodAndShelterForUpdate(goodID, shelterID int64) (*entity.Stock, error)
	// UpsertShelterStock inserta el stock del albergue para el bien o, si la
	// fila (good_id, shelter_id) ya existe, le suma la cantidad sobre la fila
	// bloqueada. Una sola sentencia: dos transacciones concurrentes nunca
	// pueden crear filas gemelas para la misma pareja bien+albergue.
	UpsertShelterStock(stock *entity.Stock) (*entity.Stock, error)
	Update(stock *entity.Stock) error
	SetActive(id int64, active bool) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Stock, error)
	ListByShelter(shelterID int64, limit, offset int) ([]*entity.Stock, error)
	// ListAfter página por llave ascendente (filas con id > afterID). A
	// diferencia de List con OFFSET, un barrido completo no salta ni repite
	// filas aunque haya escrituras concurrentes.
	ListAfter(afterID int64, limit int) ([]*entity.Stock, error)
}
