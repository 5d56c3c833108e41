package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.EvacueeRepository = (*EvacueeRepo)(nil)

const evacueeColumns = `id, shelter_id, first_name, last_name, document_id, active, created_at, updated_at`

// EvacueeRepo implementación de EvacueeRepository sobre PostgreSQL.
type EvacueeRepo struct {
	q Querier
}

// NewEvacueeRepository construye el adaptador.
func NewEvacueeRepository(q Querier) *EvacueeRepo {
	return &EvacueeRepo{q: q}
}

// Create persiste un evacuado y asigna su id.
func (r *EvacueeRepo) Create(evacuee *entity.Evacuee) error {
	query := `
		INSERT INTO evacuees (shelter_id, first_name, last_name, document_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		evacuee.ShelterID, evacuee.FirstName, evacuee.LastName,
		evacuee.DocumentID, evacuee.Active, evacuee.CreatedAt, evacuee.UpdatedAt,
	).Scan(&evacuee.ID)
	if err != nil {
		return fmt.Errorf("insert evacuee: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene un evacuado por ID.
func (r *EvacueeRepo) GetByID(id int64) (*entity.Evacuee, error) {
	query := `SELECT ` + evacueeColumns + ` FROM evacuees WHERE id = $1`
	var e entity.Evacuee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ShelterID, &e.FirstName, &e.LastName,
		&e.DocumentID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get evacuee: %w", err)
	}
	return &e, nil
}

// Update actualiza un evacuado existente.
func (r *EvacueeRepo) Update(evacuee *entity.Evacuee) error {
	query := `
		UPDATE evacuees
		SET shelter_id = $2, first_name = $3, last_name = $4,
		    document_id = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		evacuee.ID, evacuee.ShelterID, evacuee.FirstName, evacuee.LastName,
		evacuee.DocumentID, evacuee.Active, evacuee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update evacuee: %w", translateErr(err))
	}
	return nil
}

// ListByShelter lista los evacuados asignados a un albergue.
func (r *EvacueeRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Evacuee, error) {
	query := `SELECT ` + evacueeColumns + ` FROM evacuees
		WHERE shelter_id = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, shelterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list evacuees by shelter: %w", err)
	}
	return r.scanMany(rows)
}

// List lista evacuados ordenados por apellido.
func (r *EvacueeRepo) List(limit, offset int) ([]*entity.Evacuee, error) {
	query := `SELECT ` + evacueeColumns + ` FROM evacuees
		ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list evacuees: %w", err)
	}
	return r.scanMany(rows)
}

// Delete elimina un evacuado. Distribuciones asociadas producen ErrConflict.
func (r *EvacueeRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM evacuees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete evacuee: %w", translateErr(err))
	}
	return nil
}

func (r *EvacueeRepo) scanMany(rows pgx.Rows) ([]*entity.Evacuee, error) {
	defer rows.Close()
	var out []*entity.Evacuee
	for rows.Next() {
		var e entity.Evacuee
		if err := rows.Scan(
			&e.ID, &e.ShelterID, &e.FirstName, &e.LastName,
			&e.DocumentID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan evacuee: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
