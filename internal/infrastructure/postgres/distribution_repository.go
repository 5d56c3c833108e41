package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.DistributionRepository = (*DistributionRepo)(nil)

// DistributionRepo implementación de DistributionRepository sobre PostgreSQL
// (usable con pool o tx). Las distribuciones son inmutables.
type DistributionRepo struct {
	q Querier
}

// NewDistributionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistributionRepository(q Querier) *DistributionRepo {
	return &DistributionRepo{q: q}
}

const distributionColumns = `id, allocation_id, evacuee_id, quantity, user_id, created_at`

// Create persiste una distribución y asigna su id.
func (r *DistributionRepo) Create(distribution *entity.Distribution) error {
	query := `
		INSERT INTO distributions (allocation_id, evacuee_id, quantity, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		distribution.AllocationID, distribution.EvacueeID, distribution.Quantity,
		distribution.UserID, distribution.CreatedAt,
	).Scan(&distribution.ID)
	if err != nil {
		return fmt.Errorf("insert distribution: %w", translateErr(err))
	}
	return nil
}

// SumByAllocation devuelve la cantidad acumulada ya distribuida contra una
// asignación (0 si no hay distribuciones).
func (r *DistributionRepo) SumByAllocation(allocationID int64) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(quantity), 0) FROM distributions WHERE allocation_id = $1`
	if err := r.q.QueryRow(context.Background(), query, allocationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum distributions: %w", err)
	}
	return sum, nil
}

// ListByAllocation lista las distribuciones de una asignación.
func (r *DistributionRepo) ListByAllocation(allocationID int64, limit, offset int) ([]*entity.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE allocation_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, allocationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list distributions by allocation: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByEvacuee lista lo recibido por un evacuado.
func (r *DistributionRepo) ListByEvacuee(evacueeID int64, limit, offset int) ([]*entity.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE evacuee_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, evacueeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list distributions by evacuee: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *DistributionRepo) scanMany(rows pgx.Rows) ([]*entity.Distribution, error) {
	var out []*entity.Distribution
	for rows.Next() {
		var d entity.Distribution
		if err := rows.Scan(&d.ID, &d.AllocationID, &d.EvacueeID, &d.Quantity, &d.UserID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
