package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.DisasterRepository = (*DisasterRepo)(nil)

// DisasterRepo implementación de DisasterRepository sobre PostgreSQL.
type DisasterRepo struct {
	q Querier
}

// NewDisasterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDisasterRepository(q Querier) *DisasterRepo {
	return &DisasterRepo{q: q}
}

// Create persiste un desastre y asigna su id.
func (r *DisasterRepo) Create(disaster *entity.Disaster) error {
	query := `
		INSERT INTO disasters (name, kind, location, declared_at, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		disaster.Name, disaster.Kind, disaster.Location,
		disaster.DeclaredAt, disaster.Active, disaster.CreatedAt,
	).Scan(&disaster.ID)
	if err != nil {
		return fmt.Errorf("insert disaster: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene un desastre por ID.
func (r *DisasterRepo) GetByID(id int64) (*entity.Disaster, error) {
	query := `
		SELECT id, name, kind, location, declared_at, active, created_at
		FROM disasters WHERE id = $1`
	var d entity.Disaster
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Kind, &d.Location, &d.DeclaredAt, &d.Active, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disaster: %w", err)
	}
	return &d, nil
}

// Update actualiza un desastre existente.
func (r *DisasterRepo) Update(disaster *entity.Disaster) error {
	query := `
		UPDATE disasters
		SET name = $2, kind = $3, location = $4, declared_at = $5, active = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		disaster.ID, disaster.Name, disaster.Kind, disaster.Location,
		disaster.DeclaredAt, disaster.Active,
	)
	if err != nil {
		return fmt.Errorf("update disaster: %w", translateErr(err))
	}
	return nil
}

// List lista desastres, los más recientes primero.
func (r *DisasterRepo) List(limit, offset int) ([]*entity.Disaster, error) {
	query := `
		SELECT id, name, kind, location, declared_at, active, created_at
		FROM disasters ORDER BY declared_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list disasters: %w", err)
	}
	defer rows.Close()

	var out []*entity.Disaster
	for rows.Next() {
		var d entity.Disaster
		if err := rows.Scan(&d.ID, &d.Name, &d.Kind, &d.Location, &d.DeclaredAt, &d.Active, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan disaster: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Delete elimina un desastre. Albergues que lo referencian producen ErrConflict.
func (r *DisasterRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM disasters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete disaster: %w", translateErr(err))
	}
	return nil
}
