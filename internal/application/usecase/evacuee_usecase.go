package usecase

import (
	"time"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// EvacueeUseCase casos de uso CRUD para evacuados.
type EvacueeUseCase struct {
	repo        repository.EvacueeRepository
	shelterRepo repository.ShelterRepository
}

// NewEvacueeUseCase construye el caso de uso.
func NewEvacueeUseCase(repo repository.EvacueeRepository, shelterRepo repository.ShelterRepository) *EvacueeUseCase {
	return &EvacueeUseCase{repo: repo, shelterRepo: shelterRepo}
}

// Create registra un evacuado, opcionalmente asignado a un albergue activo.
func (uc *EvacueeUseCase) Create(in dto.CreateEvacueeRequest) (*dto.EvacueeResponse, error) {
	if in.ShelterID != nil {
		shelter, err := uc.shelterRepo.GetByID(*in.ShelterID)
		if err != nil {
			return nil, err
		}
		if shelter == nil {
			return nil, domain.ErrNotFound
		}
		if !shelter.Active {
			return nil, domain.ErrInactiveEntity
		}
	}
	now := time.Now().UTC()
	evacuee := &entity.Evacuee{
		ShelterID:  in.ShelterID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		DocumentID: in.DocumentID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(evacuee); err != nil {
		return nil, err
	}
	return toEvacueeResponse(evacuee), nil
}

// GetByID obtiene un evacuado por ID.
func (uc *EvacueeUseCase) GetByID(id int64) (*dto.EvacueeResponse, error) {
	evacuee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if evacuee == nil {
		return nil, domain.ErrNotFound
	}
	return toEvacueeResponse(evacuee), nil
}

// Update actualiza un evacuado (incluye traslado de albergue).
func (uc *EvacueeUseCase) Update(id int64, in dto.UpdateEvacueeRequest) (*dto.EvacueeResponse, error) {
	evacuee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if evacuee == nil {
		return nil, domain.ErrNotFound
	}
	if in.ShelterID != nil {
		shelter, err := uc.shelterRepo.GetByID(*in.ShelterID)
		if err != nil {
			return nil, err
		}
		if shelter == nil {
			return nil, domain.ErrNotFound
		}
		evacuee.ShelterID = in.ShelterID
	}
	if in.FirstName != nil {
		evacuee.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		evacuee.LastName = *in.LastName
	}
	if in.DocumentID != nil {
		evacuee.DocumentID = *in.DocumentID
	}
	if in.Active != nil {
		evacuee.Active = *in.Active
	}
	evacuee.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(evacuee); err != nil {
		return nil, err
	}
	return toEvacueeResponse(evacuee), nil
}

// List lista evacuados con paginación, opcionalmente por albergue.
func (uc *EvacueeUseCase) List(shelterID int64, limit, offset int) (*dto.EvacueeListResponse, error) {
	var (
		list []*entity.Evacuee
		err  error
	)
	if shelterID > 0 {
		list, err = uc.repo.ListByShelter(shelterID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.EvacueeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEvacueeResponse(e))
	}
	return &dto.EvacueeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un evacuado por ID. Si tiene distribuciones asociadas el
// adaptador devuelve ErrConflict.
func (uc *EvacueeUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toEvacueeResponse(e *entity.Evacuee) *dto.EvacueeResponse {
	if e == nil {
		return nil
	}
	return &dto.EvacueeResponse{
		ID:         e.ID,
		ShelterID:  e.ShelterID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		DocumentID: e.DocumentID,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
