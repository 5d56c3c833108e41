package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.ReliefGoodRepository = (*ReliefGoodRepo)(nil)

// ReliefGoodRepo implementación de ReliefGoodRepository sobre PostgreSQL.
type ReliefGoodRepo struct {
	q Querier
}

// NewReliefGoodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReliefGoodRepository(q Querier) *ReliefGoodRepo {
	return &ReliefGoodRepo{q: q}
}

const reliefGoodColumns = `id, category_id, name, unit, unit_cost, active, created_at, updated_at`

// Create persiste un bien de ayuda y asigna su id.
func (r *ReliefGoodRepo) Create(good *entity.ReliefGood) error {
	query := `
		INSERT INTO relief_goods (category_id, name, unit, unit_cost, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		good.CategoryID, good.Name, good.Unit, good.UnitCost,
		good.Active, good.CreatedAt, good.UpdatedAt,
	).Scan(&good.ID)
	if err != nil {
		return fmt.Errorf("insert relief good: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene un bien por ID.
func (r *ReliefGoodRepo) GetByID(id int64) (*entity.ReliefGood, error) {
	query := `SELECT ` + reliefGoodColumns + ` FROM relief_goods WHERE id = $1`
	var g entity.ReliefGood
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.CategoryID, &g.Name, &g.Unit, &g.UnitCost, &g.Active, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relief good: %w", err)
	}
	return &g, nil
}

// Update actualiza un bien existente.
func (r *ReliefGoodRepo) Update(good *entity.ReliefGood) error {
	query := `
		UPDATE relief_goods
		SET category_id = $2, name = $3, unit = $4, unit_cost = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		good.ID, good.CategoryID, good.Name, good.Unit, good.UnitCost, good.Active, good.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update relief good: %w", translateErr(err))
	}
	return nil
}

// List lista bienes con paginación.
func (r *ReliefGoodRepo) List(limit, offset int) ([]*entity.ReliefGood, error) {
	query := `SELECT ` + reliefGoodColumns + ` FROM relief_goods ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list relief goods: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByCategory lista los bienes de una categoría.
func (r *ReliefGoodRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.ReliefGood, error) {
	query := `SELECT ` + reliefGoodColumns + ` FROM relief_goods WHERE category_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list relief goods by category: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAfter página por llave ascendente (id > afterID).
func (r *ReliefGoodRepo) ListAfter(afterID int64, limit int) ([]*entity.ReliefGood, error) {
	query := `SELECT ` + reliefGoodColumns + ` FROM relief_goods WHERE id > $1 ORDER BY id LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list relief goods after: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Delete elimina un bien. Stocks que lo referencian producen ErrConflict.
func (r *ReliefGoodRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM relief_goods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete relief good: %w", translateErr(err))
	}
	return nil
}

func (r *ReliefGoodRepo) scanMany(rows pgx.Rows) ([]*entity.ReliefGood, error) {
	var out []*entity.ReliefGood
	for rows.Next() {
		var g entity.ReliefGood
		if err := rows.Scan(&g.ID, &g.CategoryID, &g.Name, &g.Unit, &g.UnitCost, &g.Active, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan relief good: %w", err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}
