package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.ShelterRepository = (*ShelterRepo)(nil)

// ShelterRepo implementación de ShelterRepository sobre PostgreSQL.
type ShelterRepo struct {
	q Querier
}

// NewShelterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShelterRepository(q Querier) *ShelterRepo {
	return &ShelterRepo{q: q}
}

const shelterColumns = `id, disaster_id, name, address, capacity, active, created_at, updated_at`

// Create persiste un albergue y asigna su id.
func (r *ShelterRepo) Create(shelter *entity.Shelter) error {
	query := `
		INSERT INTO shelters (disaster_id, name, address, capacity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		shelter.DisasterID, shelter.Name, shelter.Address, shelter.Capacity,
		shelter.Active, shelter.CreatedAt, shelter.UpdatedAt,
	).Scan(&shelter.ID)
	if err != nil {
		return fmt.Errorf("insert shelter: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene un albergue por ID.
func (r *ShelterRepo) GetByID(id int64) (*entity.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters WHERE id = $1`
	var s entity.Shelter
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.DisasterID, &s.Name, &s.Address, &s.Capacity, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shelter: %w", err)
	}
	return &s, nil
}

// Update actualiza un albergue existente.
func (r *ShelterRepo) Update(shelter *entity.Shelter) error {
	query := `
		UPDATE shelters
		SET disaster_id = $2, name = $3, address = $4, capacity = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		shelter.ID, shelter.DisasterID, shelter.Name, shelter.Address,
		shelter.Capacity, shelter.Active, shelter.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shelter: %w", translateErr(err))
	}
	return nil
}

// List lista albergues con paginación.
func (r *ShelterRepo) List(limit, offset int) ([]*entity.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shelters: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByDisaster lista los albergues ligados a un desastre.
func (r *ShelterRepo) ListByDisaster(disasterID int64, limit, offset int) ([]*entity.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters WHERE disaster_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, disasterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shelters by disaster: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAfter página por llave ascendente (id > afterID).
func (r *ShelterRepo) ListAfter(afterID int64, limit int) ([]*entity.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters WHERE id > $1 ORDER BY id LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list shelters after: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Delete elimina un albergue. Stocks o evacuados que lo referencian producen
// ErrConflict.
func (r *ShelterRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM shelters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shelter: %w", translateErr(err))
	}
	return nil
}

func (r *ShelterRepo) scanMany(rows pgx.Rows) ([]*entity.Shelter, error) {
	var out []*entity.Shelter
	for rows.Next() {
		var s entity.Shelter
		if err := rows.Scan(&s.ID, &s.DisasterID, &s.Name, &s.Address, &s.Capacity, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shelter: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
