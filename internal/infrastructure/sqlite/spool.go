package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/syncer"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
)

var (
	_ audit.Spool         = (*SpoolStore)(nil)
	_ syncer.SpoolDrainer = (*SpoolStore)(nil)
)

// SpoolStore encola entradas de auditoría que no llegaron a la base central y
// las sirve en orden de llegada para el push de la sincronización.
type SpoolStore struct {
	db *sqlx.DB
}

// NewSpool construye el spool sobre la base local.
func NewSpool(db *sqlx.DB) *SpoolStore {
	return &SpoolStore{db: db}
}

// Enqueue persiste localmente una entrada pendiente de subir.
func (s *SpoolStore) Enqueue(log *entity.AuditLog) error {
	_, err := s.db.Exec(`
		INSERT INTO audit_spool
			(ts, action, entity_type, entity_id, user_id, severity, success,
			 error_message, old_values, new_values, description, correlation_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.Timestamp.UTC().Format(time.RFC3339Nano),
		log.Action, log.EntityType, log.EntityID, log.UserID,
		log.Severity, log.Success, log.ErrorMessage,
		nullableJSON(log.OldValues), nullableJSON(log.NewValues),
		log.Description, log.CorrelationID,
	)
	if err != nil {
		return fmt.Errorf("enqueue audit spool: %w", err)
	}
	return nil
}

type spoolRow struct {
	ID            int64   `db:"id"`
	TS            string  `db:"ts"`
	Action        string  `db:"action"`
	EntityType    string  `db:"entity_type"`
	EntityID      *int64  `db:"entity_id"`
	UserID        *int64  `db:"user_id"`
	Severity      string  `db:"severity"`
	Success       bool    `db:"success"`
	ErrorMessage  string  `db:"error_message"`
	OldValues     *string `db:"old_values"`
	NewValues     *string `db:"new_values"`
	Description   string  `db:"description"`
	CorrelationID string  `db:"correlation_id"`
}

// Pending devuelve hasta max entradas en orden de llegada.
func (s *SpoolStore) Pending(max int) ([]syncer.SpooledEntry, error) {
	var rows []spoolRow
	err := s.db.Select(&rows, `
		SELECT id, ts, action, entity_type, entity_id, user_id, severity,
		       success, error_message, old_values, new_values, description, correlation_id
		FROM audit_spool ORDER BY id LIMIT ?`, max)
	if err != nil {
		return nil, fmt.Errorf("pending audit spool: %w", err)
	}

	out := make([]syncer.SpooledEntry, 0, len(rows))
	for _, r := range rows {
		ts, err := time.Parse(time.RFC3339Nano, r.TS)
		if err != nil {
			return nil, fmt.Errorf("parse spool ts (fila %d): %w", r.ID, err)
		}
		out = append(out, syncer.SpooledEntry{
			SpoolID: r.ID,
			Log: &entity.AuditLog{
				Timestamp:     ts,
				Action:        r.Action,
				EntityType:    r.EntityType,
				EntityID:      r.EntityID,
				UserID:        r.UserID,
				Severity:      r.Severity,
				Success:       r.Success,
				ErrorMessage:  r.ErrorMessage,
				OldValues:     rawJSON(r.OldValues),
				NewValues:     rawJSON(r.NewValues),
				Description:   r.Description,
				CorrelationID: r.CorrelationID,
			},
		})
	}
	return out, nil
}

// Remove elimina entradas ya subidas al registro central.
func (s *SpoolStore) Remove(spoolIDs []int64) error {
	if len(spoolIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM audit_spool WHERE id IN (?)`, spoolIDs)
	if err != nil {
		return fmt.Errorf("build spool delete: %w", err)
	}
	if _, err := s.db.Exec(s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("remove audit spool: %w", err)
	}
	return nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func rawJSON(s *string) json.RawMessage {
	if s == nil {
		return nil
	}
	return json.RawMessage(*s)
}
