package usecase

import (
	"time"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// DisasterUseCase casos de uso CRUD para desastres declarados.
type DisasterUseCase struct {
	repo repository.DisasterRepository
}

// NewDisasterUseCase construye el caso de uso.
func NewDisasterUseCase(repo repository.DisasterRepository) *DisasterUseCase {
	return &DisasterUseCase{repo: repo}
}

// Create declara un nuevo desastre.
func (uc *DisasterUseCase) Create(in dto.CreateDisasterRequest) (*dto.DisasterResponse, error) {
	declaredAt := in.DeclaredAt
	if declaredAt.IsZero() {
		declaredAt = time.Now().UTC()
	}
	disaster := &entity.Disaster{
		Name:       in.Name,
		Kind:       in.Kind,
		Location:   in.Location,
		DeclaredAt: declaredAt,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.repo.Create(disaster); err != nil {
		return nil, err
	}
	return toDisasterResponse(disaster), nil
}

// GetByID obtiene un desastre por ID.
func (uc *DisasterUseCase) GetByID(id int64) (*dto.DisasterResponse, error) {
	disaster, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if disaster == nil {
		return nil, domain.ErrNotFound
	}
	return toDisasterResponse(disaster), nil
}

// Update actualiza un desastre.
func (uc *DisasterUseCase) Update(id int64, in dto.UpdateDisasterRequest) (*dto.DisasterResponse, error) {
	disaster, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if disaster == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		disaster.Name = *in.Name
	}
	if in.Kind != nil {
		disaster.Kind = *in.Kind
	}
	if in.Location != nil {
		disaster.Location = *in.Location
	}
	if in.Active != nil {
		disaster.Active = *in.Active
	}
	if err := uc.repo.Update(disaster); err != nil {
		return nil, err
	}
	return toDisasterResponse(disaster), nil
}

// List lista desastres con paginación.
func (uc *DisasterUseCase) List(limit, offset int) (*dto.DisasterListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DisasterResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDisasterResponse(d))
	}
	return &dto.DisasterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un desastre por ID.
func (uc *DisasterUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toDisasterResponse(d *entity.Disaster) *dto.DisasterResponse {
	if d == nil {
		return nil
	}
	return &dto.DisasterResponse{
		ID:         d.ID,
		Name:       d.Name,
		Kind:       d.Kind,
		Location:   d.Location,
		DeclaredAt: d.DeclaredAt,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
	}
}
