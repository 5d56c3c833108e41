package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del registro de auditoría sobre PostgreSQL.
// Solo-anexar: INSERT y SELECT, nunca UPDATE ni DELETE.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (timestamp, action, entity_type, entity_id, user_id, severity, success, error_message, old_values, new_values, description, correlation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		log.Timestamp, log.Action, log.EntityType, log.EntityID, log.UserID,
		log.Severity, log.Success, log.ErrorMessage, log.OldValues, log.NewValues,
		log.Description, log.CorrelationID,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

const maxAuditPage = 500

// Search devuelve entradas ordenadas de más reciente a más antigua, filtradas
// por los criterios no vacíos del filtro. El límite siempre se acota: nunca se
// ejecuta un escaneo sin límite.
func (r *AuditLogRepo) Search(filter repository.AuditFilter) ([]*entity.AuditLog, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conditions = append(conditions, cond+"$"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		add("timestamp >= ", *filter.From)
	}
	if filter.To != nil {
		add("timestamp <= ", *filter.To)
	}
	if filter.Action != "" {
		add("action = ", filter.Action)
	}
	if filter.EntityType != "" {
		add("entity_type = ", filter.EntityType)
	}
	if filter.Severity != "" {
		add("severity = ", filter.Severity)
	}
	if filter.UserID != nil {
		add("user_id = ", *filter.UserID)
	}

	query := `
		SELECT id, timestamp, action, entity_type, entity_id, user_id, severity, success, error_message, old_values, new_values, description, correlation_id
		FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxAuditPage {
		limit = maxAuditPage
	}
	args = append(args, limit)
	query += " ORDER BY timestamp DESC, id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(
			&l.ID, &l.Timestamp, &l.Action, &l.EntityType, &l.EntityID, &l.UserID,
			&l.Severity, &l.Success, &l.ErrorMessage, &l.OldValues, &l.NewValues,
			&l.Description, &l.CorrelationID,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
