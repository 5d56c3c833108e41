package audit

import (
	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// Límites de lectura: nunca se ejecutan escaneos sin tope.
const (
	defaultQueryLimit = 50
	maxQueryLimit     = 500
)

// QueryUseCase consultas de solo lectura del registro de auditoría,
// consumidas por reportes y el tablero de control.
type QueryUseCase struct {
	repo repository.AuditLogRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.AuditLogRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// Search filtra por rango de tiempo, acción, tipo de entidad, usuario y
// severidad; siempre de más reciente a más antigua, con límite acotado.
func (uc *QueryUseCase) Search(in dto.AuditQueryRequest) ([]dto.AuditLogResponse, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.Search(repository.AuditFilter{
		From:       in.From,
		To:         in.To,
		Action:     in.Action,
		EntityType: in.EntityType,
		Severity:   in.Severity,
		UserID:     in.UserID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toAuditResponse(l))
	}
	return items, nil
}

func toAuditResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:            l.ID,
		Timestamp:     l.Timestamp,
		Action:        l.Action,
		EntityType:    l.EntityType,
		EntityID:      l.EntityID,
		UserID:        l.UserID,
		Severity:      l.Severity,
		Success:       l.Success,
		ErrorMessage:  l.ErrorMessage,
		OldValues:     l.OldValues,
		NewValues:     l.NewValues,
		Description:   l.Description,
		CorrelationID: l.CorrelationID,
	}
}
