package archive

import (
	"context"
	"errors"
	"time"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// UseCase implementa el borrado suave genérico: archivar serializa el
// registro en un sobre y borra la fila original; restaurar deshace el proceso
// conservando el id numérico original. Todo dentro de una transacción.
type UseCase struct {
	store       Store
	archiveRepo repository.ArchiveRepository
	auditor     *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(store Store, archiveRepo repository.ArchiveRepository, auditor *audit.Recorder) *UseCase {
	return &UseCase{store: store, archiveRepo: archiveRepo, auditor: auditor}
}

// Archive serializa el registro (ignorando filtros de activo), inserta el
// sobre y borra la fila original, todo o nada.
func (uc *UseCase) Archive(ctx context.Context, userID int64, in dto.ArchiveRequest) (*dto.ArchiveResponse, error) {
	var envelope *entity.Archive
	err := uc.store.Run(ctx, func(tx Tx) error {
		snapshot, displayName, err := tx.Snapshot(in.EntityType, in.EntityID)
		if err != nil {
			return err
		}
		if in.DisplayName != "" {
			displayName = in.DisplayName
		}
		envelope = &entity.Archive{
			EntityType:  in.EntityType,
			EntityID:    in.EntityID,
			Snapshot:    snapshot,
			Reason:      in.Reason,
			DisplayName: displayName,
			ArchivedBy:  &userID,
			ArchivedAt:  time.Now().UTC(),
		}
		if err := tx.InsertEnvelope(envelope); err != nil {
			return err
		}
		return tx.DeleteEntity(in.EntityType, in.EntityID)
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "archive.create", EntityType: in.EntityType, EntityID: &in.EntityID,
			UserID: &userID, Severity: severityFor(err), Success: false,
			ErrorMessage: err.Error(), Description: "archivado fallido",
		})
		return nil, err
	}
	uc.auditor.Record(audit.Entry{
		Action: "archive.create", EntityType: in.EntityType, EntityID: &in.EntityID,
		UserID: &userID, OldValues: envelope.Snapshot, Success: true,
		Description: "registro archivado: " + envelope.DisplayName,
	})
	return toArchiveResponse(envelope, true), nil
}

// Restore deserializa la instantánea y reinserta (o actualiza en sitio)
// conservando el id original; el sobre se elimina solo si la reinserción
// tuvo éxito. Cualquier fallo revierte la operación completa.
func (uc *UseCase) Restore(ctx context.Context, userID, archiveID int64) error {
	var restored *entity.Archive
	err := uc.store.Run(ctx, func(tx Tx) error {
		envelope, err := tx.GetEnvelope(archiveID)
		if err != nil {
			return err
		}
		if envelope == nil {
			return domain.ErrNotFound
		}
		id, err := tx.RestoreEntity(envelope.EntityType, envelope.Snapshot)
		if err != nil {
			return err
		}
		if id != envelope.EntityID {
			return domain.ErrTypeMismatch
		}
		restored = envelope
		return tx.DeleteEnvelope(archiveID)
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "archive.restore", EntityType: "Archive", EntityID: &archiveID,
			UserID: &userID, Severity: severityFor(err), Success: false,
			ErrorMessage: err.Error(), Description: "restauración fallida",
		})
		return err
	}
	uc.auditor.Record(audit.Entry{
		Action: "archive.restore", EntityType: restored.EntityType, EntityID: &restored.EntityID,
		UserID: &userID, NewValues: restored.Snapshot, Success: true,
		Description: "registro restaurado: " + restored.DisplayName,
	})
	return nil
}

// List busca sobres por tipo de entidad y/o texto, para el navegador de
// archivo. Las instantáneas no se incluyen en el listado.
func (uc *UseCase) List(ctx context.Context, entityType, query string, limit, offset int) (*dto.ArchiveListResponse, error) {
	list, err := uc.archiveRepo.Search(entityType, query, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArchiveResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArchiveResponse(a, false))
	}
	return &dto.ArchiveListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID devuelve un sobre con su instantánea completa.
func (uc *UseCase) GetByID(ctx context.Context, archiveID int64) (*dto.ArchiveResponse, error) {
	a, err := uc.archiveRepo.GetByID(archiveID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toArchiveResponse(a, true), nil
}

// PermanentlyDelete elimina el sobre sin restaurar: el registro archivado se
// pierde definitivamente.
func (uc *UseCase) PermanentlyDelete(ctx context.Context, userID, archiveID int64) error {
	a, err := uc.archiveRepo.GetByID(archiveID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if err := uc.archiveRepo.Delete(archiveID); err != nil {
		return err
	}
	uc.auditor.Record(audit.Entry{
		Action: "archive.purge", EntityType: a.EntityType, EntityID: &a.EntityID,
		UserID: &userID, OldValues: a.Snapshot, Severity: entity.AuditSeverityWarning,
		Success: true, Description: "sobre eliminado definitivamente: " + a.DisplayName,
	})
	return nil
}

func severityFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrTypeMismatch):
		return entity.AuditSeverityWarning
	default:
		return entity.AuditSeverityError
	}
}

func toArchiveResponse(a *entity.Archive, withSnapshot bool) *dto.ArchiveResponse {
	if a == nil {
		return nil
	}
	resp := &dto.ArchiveResponse{
		ID:          a.ID,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		Reason:      a.Reason,
		DisplayName: a.DisplayName,
		ArchivedBy:  a.ArchivedBy,
		ArchivedAt:  a.ArchivedAt,
	}
	if withSnapshot {
		resp.Snapshot = a.Snapshot
	}
	return resp
}
