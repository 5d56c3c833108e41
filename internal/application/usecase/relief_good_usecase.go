package usecase

import (
	"time"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// ReliefGoodUseCase casos de uso CRUD para bienes de ayuda.
type ReliefGoodUseCase struct {
	repo         repository.ReliefGoodRepository
	categoryRepo repository.CategoryRepository
}

// NewReliefGoodUseCase construye el caso de uso.
func NewReliefGoodUseCase(repo repository.ReliefGoodRepository, categoryRepo repository.CategoryRepository) *ReliefGoodUseCase {
	return &ReliefGoodUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo bien de ayuda. La categoría debe existir.
func (uc *ReliefGoodUseCase) Create(in dto.CreateReliefGoodRequest) (*dto.ReliefGoodResponse, error) {
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	good := &entity.ReliefGood{
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Unit:       in.Unit,
		UnitCost:   in.UnitCost,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(good); err != nil {
		return nil, err
	}
	return toReliefGoodResponse(good), nil
}

// GetByID obtiene un bien por ID.
func (uc *ReliefGoodUseCase) GetByID(id int64) (*dto.ReliefGoodResponse, error) {
	good, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, domain.ErrNotFound
	}
	return toReliefGoodResponse(good), nil
}

// Update actualiza un bien de ayuda.
func (uc *ReliefGoodUseCase) Update(id int64, in dto.UpdateReliefGoodRequest) (*dto.ReliefGoodResponse, error) {
	good, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		good.Name = *in.Name
	}
	if in.Unit != nil {
		good.Unit = *in.Unit
	}
	if in.UnitCost != nil {
		good.UnitCost = *in.UnitCost
	}
	if in.Active != nil {
		good.Active = *in.Active
	}
	good.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(good); err != nil {
		return nil, err
	}
	return toReliefGoodResponse(good), nil
}

// List lista bienes con paginación, opcionalmente por categoría.
func (uc *ReliefGoodUseCase) List(categoryID int64, limit, offset int) (*dto.ReliefGoodListResponse, error) {
	var (
		list []*entity.ReliefGood
		err  error
	)
	if categoryID > 0 {
		list, err = uc.repo.ListByCategory(categoryID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReliefGoodResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *toReliefGoodResponse(g))
	}
	return &dto.ReliefGoodListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un bien por ID. Si tiene stocks asociados el adaptador
// devuelve ErrConflict.
func (uc *ReliefGoodUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toReliefGoodResponse(g *entity.ReliefGood) *dto.ReliefGoodResponse {
	if g == nil {
		return nil
	}
	return &dto.ReliefGoodResponse{
		ID:         g.ID,
		CategoryID: g.CategoryID,
		Name:       g.Name,
		Unit:       g.Unit,
		UnitCost:   g.UnitCost,
		Active:     g.Active,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}
