package allocation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// ChainUseCase implementa la cadena de custodia de los bienes:
// CentralStock -> ShelterStock (AllocateToShelter) -> Distributed
// (DistributeToEvacuee). Cada paso produce un registro inmutable dentro de
// una transacción con las filas de stock bloqueadas.
type ChainUseCase struct {
	txRunner    TxRunner
	allocRepo   repository.AllocationRepository
	distRepo    repository.DistributionRepository
	shelterRepo repository.ShelterRepository
	evacueeRepo repository.EvacueeRepository
	userRepo    repository.UserRepository
	auditor     *audit.Recorder
}

// NewChainUseCase construye el caso de uso.
func NewChainUseCase(
	txRunner TxRunner,
	allocRepo repository.AllocationRepository,
	distRepo repository.DistributionRepository,
	shelterRepo repository.ShelterRepository,
	evacueeRepo repository.EvacueeRepository,
	userRepo repository.UserRepository,
	auditor *audit.Recorder,
) *ChainUseCase {
	return &ChainUseCase{
		txRunner:    txRunner,
		allocRepo:   allocRepo,
		distRepo:    distRepo,
		shelterRepo: shelterRepo,
		evacueeRepo: evacueeRepo,
		userRepo:    userRepo,
		auditor:     auditor,
	}
}

// AllocateToShelter traslada una cantidad de un stock central a un albergue.
// Atómico: decrementa el origen, busca-o-crea el stock del albergue para el
// mismo bien incrementándolo, e inserta la Allocation. Los tres efectos se
// confirman juntos o ninguno.
func (uc *ChainUseCase) AllocateToShelter(ctx context.Context, userID int64, in dto.AllocateRequest) (*dto.AllocationResponse, error) {
	correlationID := uuid.New().String()
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	shelter, err := uc.shelterRepo.GetByID(in.ShelterID)
	if err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, domain.ErrNotFound
	}
	if !shelter.Active {
		return nil, domain.ErrInactiveEntity
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var alloc *entity.Allocation
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		allocRepo repository.AllocationRepository,
		_ repository.DistributionRepository,
	) error {
		// Orden de bloqueo fijo: primero el origen central, luego el destino
		source, err := stockRepo.GetByIDForUpdate(in.StockID)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		if !source.Active {
			return domain.ErrInactiveEntity
		}
		// Solo la bodega central reparte; un stock ya ubicado no se reasigna
		if !source.IsCentral() {
			return domain.ErrInvalidInput
		}
		if source.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		// Upsert en una sola sentencia: dos asignaciones concurrentes del
		// mismo bien al mismo albergue nunca crean filas gemelas
		dest, err := stockRepo.UpsertShelterStock(&entity.Stock{
			GoodID:      source.GoodID,
			ShelterID:   &in.ShelterID,
			Quantity:    in.Quantity,
			MaxCapacity: source.MaxCapacity,
			UnitCost:    source.UnitCost,
			Active:      true,
			LastUpdated: now,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		// La capacidad se verifica sobre el resultado; el error revierte la tx
		if dest.Quantity > dest.MaxCapacity {
			return domain.ErrCapacityExceeded
		}

		source.Quantity -= in.Quantity
		source.LastUpdated = now
		if err := stockRepo.Update(source); err != nil {
			return err
		}

		alloc = &entity.Allocation{
			StockID:   in.StockID,
			ShelterID: in.ShelterID,
			Quantity:  in.Quantity,
			UserID:    userID,
			CreatedAt: now,
		}
		return allocRepo.Create(alloc)
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "allocation.create", EntityType: "Allocation", UserID: &userID,
			NewValues: in, Severity: severityFor(err), Success: false,
			ErrorMessage: err.Error(), CorrelationID: correlationID,
			Description: "asignación a albergue rechazada",
		})
		return nil, err
	}
	uc.auditor.Record(audit.Entry{
		Action: "allocation.create", EntityType: "Allocation", EntityID: &alloc.ID,
		UserID: &userID, NewValues: alloc, Success: true, CorrelationID: correlationID,
		Description: "asignación a albergue",
	})
	return toAllocationResponse(alloc), nil
}

// DistributeToEvacuee entrega una cantidad de una asignación a un evacuado.
// La cantidad acumulada distribuida contra la asignación nunca puede superar
// la cantidad asignada; el chequeo se hace con la asignación bloqueada.
func (uc *ChainUseCase) DistributeToEvacuee(ctx context.Context, userID, allocationID int64, in dto.DistributeRequest) (*dto.DistributionResponse, error) {
	correlationID := uuid.New().String()
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	evacuee, err := uc.evacueeRepo.GetByID(in.EvacueeID)
	if err != nil {
		return nil, err
	}
	if evacuee == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var dist *entity.Distribution
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		allocRepo repository.AllocationRepository,
		distRepo repository.DistributionRepository,
	) error {
		alloc, err := allocRepo.GetByIDForUpdate(allocationID)
		if err != nil {
			return err
		}
		if alloc == nil {
			return domain.ErrNotFound
		}
		distributed, err := distRepo.SumByAllocation(allocationID)
		if err != nil {
			return err
		}
		if distributed+in.Quantity > alloc.Quantity {
			return domain.ErrExceedsAllocation
		}

		// La entrega sale del stock del albergue para el mismo bien
		source, err := stockRepo.GetByID(alloc.StockID)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		shelterStock, err := stockRepo.FindByGoodAndShelterForUpdate(source.GoodID, alloc.ShelterID)
		if err != nil {
			return err
		}
		if shelterStock == nil {
			return domain.ErrNotFound
		}
		if shelterStock.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		shelterStock.Quantity -= in.Quantity
		shelterStock.LastUpdated = now
		if err := stockRepo.Update(shelterStock); err != nil {
			return err
		}

		dist = &entity.Distribution{
			AllocationID: allocationID,
			EvacueeID:    in.EvacueeID,
			Quantity:     in.Quantity,
			UserID:       userID,
			CreatedAt:    now,
		}
		return distRepo.Create(dist)
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "distribution.create", EntityType: "Distribution", UserID: &userID,
			NewValues: in, Severity: severityFor(err), Success: false,
			ErrorMessage: err.Error(), CorrelationID: correlationID,
			Description: "distribución a evacuado rechazada",
		})
		return nil, err
	}
	uc.auditor.Record(audit.Entry{
		Action: "distribution.create", EntityType: "Distribution", EntityID: &dist.ID,
		UserID: &userID, NewValues: dist, Success: true, CorrelationID: correlationID,
		Description: "distribución a evacuado",
	})
	return toDistributionResponse(dist), nil
}

// List lista asignaciones con paginación.
func (uc *ChainUseCase) List(ctx context.Context, limit, offset int) ([]dto.AllocationResponse, error) {
	list, err := uc.allocRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAllocationResponse(a))
	}
	return items, nil
}

// ListDistributions lista las distribuciones de una asignación.
func (uc *ChainUseCase) ListDistributions(ctx context.Context, allocationID int64, limit, offset int) ([]dto.DistributionResponse, error) {
	alloc, err := uc.allocRepo.GetByID(allocationID)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.distRepo.ListByAllocation(allocationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DistributionResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDistributionResponse(d))
	}
	return items, nil
}

func severityFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrExceedsAllocation),
		errors.Is(err, domain.ErrInactiveEntity),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		return entity.AuditSeverityWarning
	default:
		return entity.AuditSeverityError
	}
}

func toAllocationResponse(a *entity.Allocation) *dto.AllocationResponse {
	if a == nil {
		return nil
	}
	return &dto.AllocationResponse{
		ID:        a.ID,
		StockID:   a.StockID,
		ShelterID: a.ShelterID,
		Quantity:  a.Quantity,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
	}
}

func toDistributionResponse(d *entity.Distribution) *dto.DistributionResponse {
	if d == nil {
		return nil
	}
	return &dto.DistributionResponse{
		ID:           d.ID,
		AllocationID: d.AllocationID,
		EvacueeID:    d.EvacueeID,
		Quantity:     d.Quantity,
		UserID:       d.UserID,
		CreatedAt:    d.CreatedAt,
	}
}
