package audit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
	"github.com/javierdrios/Socorro-api/pkg/logger"
)

type fakeAuditRepo struct {
	entries []*entity.AuditLog
	failing bool
}

func (r *fakeAuditRepo) Create(log *entity.AuditLog) error {
	if r.failing {
		return errors.New("base remota caída")
	}
	r.entries = append(r.entries, log)
	return nil
}

func (r *fakeAuditRepo) Search(filter repository.AuditFilter) ([]*entity.AuditLog, error) {
	return r.entries, nil
}

type fakeSpool struct {
	queued  []*entity.AuditLog
	failing bool
}

func (s *fakeSpool) Enqueue(log *entity.AuditLog) error {
	if s.failing {
		return errors.New("spool lleno")
	}
	s.queued = append(s.queued, log)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// Camino feliz: la entrada llega al repositorio con severidad por defecto y
// correlación generada.
func TestRecord_EscribeConValoresPorDefecto(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, nil, testLogger())

	id := int64(7)
	rec.Record(audit.Entry{
		Action: "stock.adjust", EntityType: "Stock", EntityID: &id, Success: true,
	})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, entity.AuditSeverityInfo, entry.Severity, "sin severidad explícita se asume info")
	assert.NotEmpty(t, entry.CorrelationID, "siempre debe haber id de correlación")
	assert.False(t, entry.Timestamp.IsZero())
	assert.Nil(t, entry.OldValues, "sin valores previos el campo queda nulo")
}

// Si la base remota falla, la entrada se encola en el spool local; la
// operación principal nunca se entera.
func TestRecord_FalloRemotoEncolaEnSpool(t *testing.T) {
	repo := &fakeAuditRepo{failing: true}
	spool := &fakeSpool{}
	rec := audit.NewRecorder(repo, spool, testLogger())

	rec.Record(audit.Entry{Action: "budget.add_item", EntityType: "Budget", Success: true})

	assert.Empty(t, repo.entries)
	require.Len(t, spool.queued, 1)
	assert.Equal(t, "budget.add_item", spool.queued[0].Action)
}

// Fallan repositorio y spool: Record no entra en pánico ni propaga nada.
func TestRecord_FalloTotalNoPropaga(t *testing.T) {
	repo := &fakeAuditRepo{failing: true}
	spool := &fakeSpool{failing: true}
	rec := audit.NewRecorder(repo, spool, testLogger())

	assert.NotPanics(t, func() {
		rec.Record(audit.Entry{Action: "stock.delete", EntityType: "Stock", Success: false})
	})
}

// Sin spool configurado el fallo remoto tampoco propaga.
func TestRecord_SinSpoolNoPropaga(t *testing.T) {
	repo := &fakeAuditRepo{failing: true}
	rec := audit.NewRecorder(repo, nil, testLogger())

	assert.NotPanics(t, func() {
		rec.Record(audit.Entry{Action: "stock.create", EntityType: "Stock", Success: true})
	})
}

// Los valores antes/después se serializan como JSON crudo.
func TestRecord_SerializaValores(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, nil, testLogger())

	rec.Record(audit.Entry{
		Action: "stock.adjust", EntityType: "Stock", Success: true,
		OldValues: map[string]int64{"quantity": 100},
		NewValues: map[string]int64{"quantity": 150},
	})

	require.Len(t, repo.entries, 1)
	assert.JSONEq(t, `{"quantity":100}`, string(repo.entries[0].OldValues))
	assert.JSONEq(t, `{"quantity":150}`, string(repo.entries[0].NewValues))
}
