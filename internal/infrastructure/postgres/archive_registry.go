package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/javierdrios/Socorro-api/internal/domain"
)

// archivedType describe cómo archivar y restaurar un tipo concreto: carga de
// la fila (ignorando filtros de activo), upsert conservando el id original y
// derivación del nombre a mostrar. Registro explícito; sin reflexión.
type archivedType struct {
	table    string
	snapshot func(q Querier, id int64) (json.RawMessage, string, error)
	restore  func(q Querier, raw json.RawMessage) (int64, error)
}

var archiveRegistry = map[string]archivedType{
	"Category":   categoryArchive,
	"ReliefGood": reliefGoodArchive,
	"Evacuee":    evacueeArchive,
}

// lookupArchivedType devuelve domain.ErrInvalidInput para tags no registrados.
func lookupArchivedType(entityType string) (archivedType, error) {
	at, ok := archiveRegistry[entityType]
	if !ok {
		return archivedType{}, fmt.Errorf("%w: tipo no archivable %q", domain.ErrInvalidInput, entityType)
	}
	return at, nil
}

// bumpSequence realinea la secuencia tras insertar con id explícito.
func bumpSequence(q Querier, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 1) FROM %s), 1))`,
		table, table,
	)
	if _, err := q.Exec(context.Background(), query); err != nil {
		return fmt.Errorf("bump sequence %s: %w", table, err)
	}
	return nil
}

// decodeSnapshot deserializa la instantánea y valida que corresponda al tipo
// (un id cero delata una instantánea de otro tipo o corrupta).
func decodeSnapshot(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: instantánea ilegible: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// ── Category ────────────────────────────────────────────────────────────────

type categorySnapshot struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

var categoryArchive = archivedType{
	table: "categories",
	snapshot: func(q Querier, id int64) (json.RawMessage, string, error) {
		query := `
			SELECT id, name, description, active,
			       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"'),
			       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')
			FROM categories WHERE id = $1`
		var s categorySnapshot
		err := q.QueryRow(context.Background(), query, id).Scan(
			&s.ID, &s.Name, &s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, "", domain.ErrNotFound
			}
			return nil, "", fmt.Errorf("snapshot category: %w", err)
		}
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, "", fmt.Errorf("serializar category: %w", err)
		}
		return raw, s.Name, nil
	},
	restore: func(q Querier, raw json.RawMessage) (int64, error) {
		var s categorySnapshot
		if err := decodeSnapshot(raw, &s); err != nil {
			return 0, err
		}
		if s.ID <= 0 {
			return 0, fmt.Errorf("%w: la instantánea no es una Category", domain.ErrTypeMismatch)
		}
		query := `
			INSERT INTO categories (id, name, description, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5::timestamptz, $6::timestamptz)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, description = EXCLUDED.description,
				active = EXCLUDED.active, updated_at = EXCLUDED.updated_at`
		if _, err := q.Exec(context.Background(), query,
			s.ID, s.Name, s.Description, s.Active, s.CreatedAt, s.UpdatedAt,
		); err != nil {
			return 0, fmt.Errorf("restore category: %w", translateErr(err))
		}
		if err := bumpSequence(q, "categories"); err != nil {
			return 0, err
		}
		return s.ID, nil
	},
}

// ── ReliefGood ──────────────────────────────────────────────────────────────

type reliefGoodSnapshot struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	UnitCost   string `json:"unit_cost"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

var reliefGoodArchive = archivedType{
	table: "relief_goods",
	snapshot: func(q Querier, id int64) (json.RawMessage, string, error) {
		query := `
			SELECT id, category_id, name, unit, unit_cost::text, active,
			       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"'),
			       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')
			FROM relief_goods WHERE id = $1`
		var s reliefGoodSnapshot
		err := q.QueryRow(context.Background(), query, id).Scan(
			&s.ID, &s.CategoryID, &s.Name, &s.Unit, &s.UnitCost, &s.Active,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, "", domain.ErrNotFound
			}
			return nil, "", fmt.Errorf("snapshot relief good: %w", err)
		}
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, "", fmt.Errorf("serializar relief good: %w", err)
		}
		return raw, s.Name, nil
	},
	restore: func(q Querier, raw json.RawMessage) (int64, error) {
		var s reliefGoodSnapshot
		if err := decodeSnapshot(raw, &s); err != nil {
			return 0, err
		}
		if s.ID <= 0 || s.CategoryID <= 0 {
			return 0, fmt.Errorf("%w: la instantánea no es un ReliefGood", domain.ErrTypeMismatch)
		}
		query := `
			INSERT INTO relief_goods (id, category_id, name, unit, unit_cost, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5::numeric, $6, $7::timestamptz, $8::timestamptz)
			ON CONFLICT (id) DO UPDATE SET
				category_id = EXCLUDED.category_id, name = EXCLUDED.name,
				unit = EXCLUDED.unit, unit_cost = EXCLUDED.unit_cost,
				active = EXCLUDED.active, updated_at = EXCLUDED.updated_at`
		if _, err := q.Exec(context.Background(), query,
			s.ID, s.CategoryID, s.Name, s.Unit, s.UnitCost, s.Active,
			s.CreatedAt, s.UpdatedAt,
		); err != nil {
			return 0, fmt.Errorf("restore relief good: %w", translateErr(err))
		}
		if err := bumpSequence(q, "relief_goods"); err != nil {
			return 0, err
		}
		return s.ID, nil
	},
}

// ── Evacuee ─────────────────────────────────────────────────────────────────

type evacueeSnapshot struct {
	ID         int64  `json:"id"`
	ShelterID  *int64 `json:"shelter_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DocumentID string `json:"document_id"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

var evacueeArchive = archivedType{
	table: "evacuees",
	snapshot: func(q Querier, id int64) (json.RawMessage, string, error) {
		query := `
			SELECT id, shelter_id, first_name, last_name, document_id, active,
			       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"'),
			       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')
			FROM evacuees WHERE id = $1`
		var s evacueeSnapshot
		err := q.QueryRow(context.Background(), query, id).Scan(
			&s.ID, &s.ShelterID, &s.FirstName, &s.LastName, &s.DocumentID,
			&s.Active, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, "", domain.ErrNotFound
			}
			return nil, "", fmt.Errorf("snapshot evacuee: %w", err)
		}
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, "", fmt.Errorf("serializar evacuee: %w", err)
		}
		name := strings.TrimSpace(s.FirstName + " " + s.LastName)
		return raw, name, nil
	},
	restore: func(q Querier, raw json.RawMessage) (int64, error) {
		var s evacueeSnapshot
		if err := decodeSnapshot(raw, &s); err != nil {
			return 0, err
		}
		if s.ID <= 0 || s.DocumentID == "" {
			return 0, fmt.Errorf("%w: la instantánea no es un Evacuee", domain.ErrTypeMismatch)
		}
		query := `
			INSERT INTO evacuees (id, shelter_id, first_name, last_name, document_id, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7::timestamptz, $8::timestamptz)
			ON CONFLICT (id) DO UPDATE SET
				shelter_id = EXCLUDED.shelter_id, first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name, document_id = EXCLUDED.document_id,
				active = EXCLUDED.active, updated_at = EXCLUDED.updated_at`
		if _, err := q.Exec(context.Background(), query,
			s.ID, s.ShelterID, s.FirstName, s.LastName, s.DocumentID, s.Active,
			s.CreatedAt, s.UpdatedAt,
		); err != nil {
			return 0, fmt.Errorf("restore evacuee: %w", translateErr(err))
		}
		if err := bumpSequence(q, "evacuees"); err != nil {
			return 0, err
		}
		return s.ID, nil
	},
}
