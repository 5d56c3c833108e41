package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/javierdrios/Socorro-api/internal/application/archive"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var (
	_ archive.Store                = (*ArchiveStore)(nil)
	_ archive.Tx                   = (*archiveTx)(nil)
	_ repository.ArchiveRepository = (*ArchiveRepo)(nil)
)

const archiveColumns = `id, entity_type, entity_id, snapshot, reason, display_name, archived_by, archived_at`

// ArchiveStore implementa el puerto transaccional del archivo genérico:
// instantánea, sobre y borrado/reinserción se confirman juntos o ninguno.
type ArchiveStore struct {
	pool *pgxpool.Pool
}

// NewArchiveStore construye el store sobre el pool central.
func NewArchiveStore(pool *pgxpool.Pool) *ArchiveStore {
	return &ArchiveStore{pool: pool}
}

// Run ejecuta fn dentro de una transacción del pool.
func (s *ArchiveStore) Run(ctx context.Context, fn func(tx archive.Tx) error) error {
	return runTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&archiveTx{q: tx})
	})
}

// archiveTx resuelve cada operación contra el registro de tipos archivables.
type archiveTx struct {
	q Querier
}

func (t *archiveTx) Snapshot(entityType string, id int64) (json.RawMessage, string, error) {
	at, err := lookupArchivedType(entityType)
	if err != nil {
		return nil, "", err
	}
	return at.snapshot(t.q, id)
}

func (t *archiveTx) DeleteEntity(entityType string, id int64) error {
	at, err := lookupArchivedType(entityType)
	if err != nil {
		return err
	}
	tag, err := t.q.Exec(context.Background(),
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, at.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", entityType, translateErr(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *archiveTx) RestoreEntity(entityType string, snapshot json.RawMessage) (int64, error) {
	at, err := lookupArchivedType(entityType)
	if err != nil {
		return 0, err
	}
	return at.restore(t.q, snapshot)
}

func (t *archiveTx) InsertEnvelope(a *entity.Archive) error {
	return insertEnvelope(t.q, a)
}

func (t *archiveTx) GetEnvelope(id int64) (*entity.Archive, error) {
	return getEnvelope(t.q, id)
}

func (t *archiveTx) DeleteEnvelope(id int64) error {
	return deleteEnvelope(t.q, id)
}

// ArchiveRepo implementación de ArchiveRepository para lecturas y purgas
// fuera de la transacción de archivo.
type ArchiveRepo struct {
	q Querier
}

// NewArchiveRepository construye el adaptador.
func NewArchiveRepository(q Querier) *ArchiveRepo {
	return &ArchiveRepo{q: q}
}

func (r *ArchiveRepo) Create(a *entity.Archive) error {
	return insertEnvelope(r.q, a)
}

func (r *ArchiveRepo) GetByID(id int64) (*entity.Archive, error) {
	return getEnvelope(r.q, id)
}

// Search filtra por tipo de entidad y/o texto del nombre a mostrar.
func (r *ArchiveRepo) Search(entityType, query string, limit, offset int) ([]*entity.Archive, error) {
	sql := `SELECT ` + archiveColumns + ` FROM archives WHERE 1=1`
	args := []any{}
	if entityType != "" {
		args = append(args, entityType)
		sql += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if query != "" {
		args = append(args, "%"+query+"%")
		sql += fmt.Sprintf(" AND display_name ILIKE $%d", len(args))
	}
	args = append(args, limit, offset)
	sql += fmt.Sprintf(" ORDER BY archived_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search archives: %w", err)
	}
	defer rows.Close()

	var out []*entity.Archive
	for rows.Next() {
		var a entity.Archive
		if err := rows.Scan(
			&a.ID, &a.EntityType, &a.EntityID, &a.Snapshot,
			&a.Reason, &a.DisplayName, &a.ArchivedBy, &a.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *ArchiveRepo) Delete(id int64) error {
	return deleteEnvelope(r.q, id)
}

func insertEnvelope(q Querier, a *entity.Archive) error {
	query := `
		INSERT INTO archives (entity_type, entity_id, snapshot, reason, display_name, archived_by, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := q.QueryRow(context.Background(), query,
		a.EntityType, a.EntityID, a.Snapshot, a.Reason,
		a.DisplayName, a.ArchivedBy, a.ArchivedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert archive: %w", translateErr(err))
	}
	return nil
}

func getEnvelope(q Querier, id int64) (*entity.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM archives WHERE id = $1`
	var a entity.Archive
	err := q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.EntityType, &a.EntityID, &a.Snapshot,
		&a.Reason, &a.DisplayName, &a.ArchivedBy, &a.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get archive: %w", err)
	}
	return &a, nil
}

func deleteEnvelope(q Querier, id int64) error {
	_, err := q.Exec(context.Background(), `DELETE FROM archives WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete archive: %w", err)
	}
	return nil
}
