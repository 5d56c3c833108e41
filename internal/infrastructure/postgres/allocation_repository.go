package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository sobre PostgreSQL
// (usable con pool o tx). Las asignaciones son inmutables: solo INSERT y SELECT.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `id, stock_id, shelter_id, quantity, user_id, created_at`

// Create persiste una asignación y asigna su id.
func (r *AllocationRepo) Create(allocation *entity.Allocation) error {
	query := `
		INSERT INTO allocations (stock_id, shelter_id, quantity, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		allocation.StockID, allocation.ShelterID, allocation.Quantity,
		allocation.UserID, allocation.CreatedAt,
	).Scan(&allocation.ID)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AllocationRepo) GetByID(id int64) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get allocation")
}

// GetByIDForUpdate bloquea la asignación para serializar las distribuciones
// concurrentes contra su cantidad.
func (r *AllocationRepo) GetByIDForUpdate(id int64) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get allocation for update")
}

// ExistsByStock indica si un stock tiene historial de asignaciones (como
// origen). Decide entre baja suave y dura.
func (r *AllocationRepo) ExistsByStock(stockID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM allocations WHERE stock_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, stockID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists allocation by stock: %w", err)
	}
	return exists, nil
}

// List lista asignaciones, las más recientes primero.
func (r *AllocationRepo) List(limit, offset int) ([]*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations ORDER BY id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByShelter lista las asignaciones recibidas por un albergue.
func (r *AllocationRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE shelter_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, shelterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list allocations by shelter: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *AllocationRepo) scanOne(row pgx.Row, op string) (*entity.Allocation, error) {
	var a entity.Allocation
	err := row.Scan(&a.ID, &a.StockID, &a.ShelterID, &a.Quantity, &a.UserID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (r *AllocationRepo) scanMany(rows pgx.Rows) ([]*entity.Allocation, error) {
	var out []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(&a.ID, &a.StockID, &a.ShelterID, &a.Quantity, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
