package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
	"github.com/javierdrios/Socorro-api/pkg/logger"
)

// Spool encola entradas de auditoría que no pudieron escribirse en la base
// remota, para empujarlas luego en la sincronización (pull-then-push).
type Spool interface {
	Enqueue(log *entity.AuditLog) error
}

// Entry describe una acción a auditar. Severity vacío equivale a info.
type Entry struct {
	Action        string
	EntityType    string
	EntityID      *int64
	UserID        *int64
	OldValues     any
	NewValues     any
	Description   string
	Severity      string
	Success       bool
	ErrorMessage  string
	CorrelationID string
}

// Recorder escribe el registro de auditoría con semántica fire-and-forget:
// un fallo al auditar jamás aborta ni revierte la operación principal; se
// registra en el logger y, si hay spool local, se encola para el próximo push.
type Recorder struct {
	repo  repository.AuditLogRepository
	spool Spool
	log   *logger.Logger
}

// NewRecorder construye el recorder. spool puede ser nil (sin cola local).
func NewRecorder(repo repository.AuditLogRepository, spool Spool, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, spool: spool, log: log}
}

// Record persiste la entrada. Nunca devuelve error.
func (r *Recorder) Record(e Entry) {
	entry := r.toLog(e)
	if err := r.repo.Create(entry); err == nil {
		return
	} else if r.spool != nil {
		if spoolErr := r.spool.Enqueue(entry); spoolErr == nil {
			r.log.Warn().Err(err).
				Str("action", e.Action).
				Str("entity_type", e.EntityType).
				Msg("auditoría remota falló; entrada encolada en spool local")
			return
		}
	}
	// Canal de último recurso: diagnóstico local
	r.log.Error().
		Str("action", e.Action).
		Str("entity_type", e.EntityType).
		Str("description", e.Description).
		Msg("no se pudo escribir la entrada de auditoría")
}

func (r *Recorder) toLog(e Entry) *entity.AuditLog {
	severity := e.Severity
	if severity == "" {
		severity = entity.AuditSeverityInfo
	}
	correlationID := e.CorrelationID
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	old, _ := json.Marshal(e.OldValues)
	newV, _ := json.Marshal(e.NewValues)
	if e.OldValues == nil {
		old = nil
	}
	if e.NewValues == nil {
		newV = nil
	}
	return &entity.AuditLog{
		Timestamp:     time.Now().UTC(),
		Action:        e.Action,
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		UserID:        e.UserID,
		Severity:      severity,
		Success:       e.Success,
		ErrorMessage:  e.ErrorMessage,
		OldValues:     old,
		NewValues:     newV,
		Description:   e.Description,
		CorrelationID: correlationID,
	}
}
