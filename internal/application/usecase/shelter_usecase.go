package usecase

import (
	"time"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// ShelterUseCase casos de uso CRUD para albergues.
type ShelterUseCase struct {
	repo         repository.ShelterRepository
	disasterRepo repository.DisasterRepository
}

// NewShelterUseCase construye el caso de uso.
func NewShelterUseCase(repo repository.ShelterRepository, disasterRepo repository.DisasterRepository) *ShelterUseCase {
	return &ShelterUseCase{repo: repo, disasterRepo: disasterRepo}
}

// Create crea un nuevo albergue. Si se liga a un desastre, este debe existir.
func (uc *ShelterUseCase) Create(in dto.CreateShelterRequest) (*dto.ShelterResponse, error) {
	if in.DisasterID != nil {
		disaster, err := uc.disasterRepo.GetByID(*in.DisasterID)
		if err != nil {
			return nil, err
		}
		if disaster == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now().UTC()
	shelter := &entity.Shelter{
		DisasterID: in.DisasterID,
		Name:       in.Name,
		Address:    in.Address,
		Capacity:   in.Capacity,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(shelter); err != nil {
		return nil, err
	}
	return toShelterResponse(shelter), nil
}

// GetByID obtiene un albergue por ID.
func (uc *ShelterUseCase) GetByID(id int64) (*dto.ShelterResponse, error) {
	shelter, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, domain.ErrNotFound
	}
	return toShelterResponse(shelter), nil
}

// Update actualiza un albergue.
func (uc *ShelterUseCase) Update(id int64, in dto.UpdateShelterRequest) (*dto.ShelterResponse, error) {
	shelter, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		shelter.Name = *in.Name
	}
	if in.Address != nil {
		shelter.Address = *in.Address
	}
	if in.Capacity != nil {
		shelter.Capacity = *in.Capacity
	}
	if in.Active != nil {
		shelter.Active = *in.Active
	}
	shelter.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(shelter); err != nil {
		return nil, err
	}
	return toShelterResponse(shelter), nil
}

// List lista albergues con paginación, opcionalmente por desastre.
func (uc *ShelterUseCase) List(disasterID int64, limit, offset int) (*dto.ShelterListResponse, error) {
	var (
		list []*entity.Shelter
		err  error
	)
	if disasterID > 0 {
		list, err = uc.repo.ListByDisaster(disasterID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelterResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShelterResponse(s))
	}
	return &dto.ShelterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un albergue por ID. Si tiene stocks o evacuados asociados el
// adaptador devuelve ErrConflict.
func (uc *ShelterUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toShelterResponse(s *entity.Shelter) *dto.ShelterResponse {
	if s == nil {
		return nil
	}
	return &dto.ShelterResponse{
		ID:         s.ID,
		DisasterID: s.DisasterID,
		Name:       s.Name,
		Address:    s.Address,
		Capacity:   s.Capacity,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
