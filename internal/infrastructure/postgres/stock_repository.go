package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, good_id, disaster_id, shelter_id, quantity, max_capacity, unit_cost, active, last_updated, created_at`

// Create persiste un stock nuevo y asigna su id.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (good_id, disaster_id, shelter_id, quantity, max_capacity, unit_cost, active, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		stock.GoodID, stock.DisasterID, stock.ShelterID, stock.Quantity,
		stock.MaxCapacity, stock.UnitCost, stock.Active, stock.LastUpdated, stock.CreatedAt,
	).Scan(&stock.ID)
	if err != nil {
		return fmt.Errorf("insert stock: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene un stock por ID.
func (r *StockRepo) GetByID(id int64) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock")
}

// GetByIDForUpdate obtiene un stock y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetByIDForUpdate(id int64) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock for update")
}

// FindByGoodAndShelterForUpdate localiza el stock de un bien en un albergue,
// bloqueándolo. Devuelve nil (sin error) si no existe.
func (r *StockRepo) FindByGoodAndShelterForUpdate(goodID, shelterID int64) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE good_id = $1 AND shelter_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, goodID, shelterID), "find shelter stock")
}

// UpsertShelterStock inserta el stock del albergue o suma la cantidad sobre
// la fila existente para (good_id, shelter_id), en una sola sentencia. El
// índice único parcial stocks_good_shelter_key (ver deploy/schema.sql) hace
// imposible que dos transacciones concurrentes creen filas gemelas: la
// segunda cae en el DO UPDATE con la fila ya bloqueada.
func (r *StockRepo) UpsertShelterStock(stock *entity.Stock) (*entity.Stock, error) {
	query := `
		INSERT INTO stocks (good_id, disaster_id, shelter_id, quantity, max_capacity, unit_cost, active, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (good_id, shelter_id) WHERE shelter_id IS NOT NULL
		DO UPDATE SET quantity = stocks.quantity + EXCLUDED.quantity, last_updated = EXCLUDED.last_updated
		RETURNING ` + stockColumns
	return r.scanOne(r.q.QueryRow(context.Background(), query,
		stock.GoodID, stock.DisasterID, stock.ShelterID, stock.Quantity,
		stock.MaxCapacity, stock.UnitCost, stock.Active, stock.LastUpdated, stock.CreatedAt,
	), "upsert shelter stock")
}

// Update actualiza la fila completa del stock.
func (r *StockRepo) Update(stock *entity.Stock) error {
	query := `
		UPDATE stocks
		SET good_id = $2, disaster_id = $3, shelter_id = $4, quantity = $5,
		    max_capacity = $6, unit_cost = $7, active = $8, last_updated = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.GoodID, stock.DisasterID, stock.ShelterID, stock.Quantity,
		stock.MaxCapacity, stock.UnitCost, stock.Active, stock.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", translateErr(err))
	}
	return nil
}

// SetActive activa o desactiva un stock (baja suave).
func (r *StockRepo) SetActive(id int64, active bool) error {
	query := `UPDATE stocks SET active = $2, last_updated = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set stock active: %w", err)
	}
	return nil
}

// Delete elimina la fila (baja dura; solo para stocks sin historial).
func (r *StockRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", translateErr(err))
	}
	return nil
}

// List lista stocks con paginación, los más recientes primero.
func (r *StockRepo) List(limit, offset int) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByShelter lista los stocks de un albergue.
func (r *StockRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE shelter_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, shelterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stocks by shelter: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAfter página por llave ascendente (id > afterID).
func (r *StockRepo) ListAfter(afterID int64, limit int) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id > $1 ORDER BY id LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stocks after: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *StockRepo) scanOne(row pgx.Row, op string) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(
		&s.ID, &s.GoodID, &s.DisasterID, &s.ShelterID, &s.Quantity,
		&s.MaxCapacity, &s.UnitCost, &s.Active, &s.LastUpdated, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

func (r *StockRepo) scanMany(rows pgx.Rows) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(
			&s.ID, &s.GoodID, &s.DisasterID, &s.ShelterID, &s.Quantity,
			&s.MaxCapacity, &s.UnitCost, &s.Active, &s.LastUpdated, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
