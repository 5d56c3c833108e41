package stock

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
	domstock "github.com/javierdrios/Socorro-api/internal/domain/stock"
)

// LedgerUseCase opera el libro de stock de forma transaccional: altas,
// ajustes de cantidad con bloqueo de fila (SELECT FOR UPDATE) y baja
// suave/dura según historial de asignaciones.
type LedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
	goodRepo  repository.ReliefGoodRepository
	auditor   *audit.Recorder
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	goodRepo repository.ReliefGoodRepository,
	auditor *audit.Recorder,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		goodRepo:  goodRepo,
		auditor:   auditor,
	}
}

// CreateStock da de alta un stock (ingreso inicial o reabastecimiento).
func (uc *LedgerUseCase) CreateStock(ctx context.Context, userID int64, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.Quantity < 0 || in.MaxCapacity <= 0 || in.Quantity > in.MaxCapacity {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	good, err := uc.goodRepo.GetByID(in.GoodID)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	s := &entity.Stock{
		GoodID:      in.GoodID,
		DisasterID:  in.DisasterID,
		ShelterID:   in.ShelterID,
		Quantity:    in.Quantity,
		MaxCapacity: in.MaxCapacity,
		UnitCost:    in.UnitCost,
		Active:      true,
		LastUpdated: now,
		CreatedAt:   now,
	}
	if err := uc.stockRepo.Create(s); err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "stock.create", EntityType: "Stock", UserID: &userID,
			Severity: entity.AuditSeverityError, Success: false, ErrorMessage: err.Error(),
			Description: "alta de stock fallida",
		})
		return nil, err
	}
	uc.auditor.Record(audit.Entry{
		Action: "stock.create", EntityType: "Stock", EntityID: &s.ID, UserID: &userID,
		NewValues: s, Success: true, Description: "alta de stock",
	})
	return toStockResponse(s), nil
}

// AdjustQuantity aplica un delta (positivo o negativo) a la cantidad de un
// stock dentro de una transacción con la fila bloqueada. Rechaza el delta si
// el resultado queda fuera de [0, MaxCapacity], dejando la cantidad intacta.
func (uc *LedgerUseCase) AdjustQuantity(ctx context.Context, stockID, delta, userID int64) (*dto.StockResponse, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidInput
	}

	var before, after *entity.Stock
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.AllocationRepository) error {
		s, err := stockRepo.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		snapshot := *s
		before = &snapshot

		newQty := s.Quantity + delta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		if newQty > s.MaxCapacity {
			return domain.ErrCapacityExceeded
		}
		s.Quantity = newQty
		s.LastUpdated = time.Now()
		if err := stockRepo.Update(s); err != nil {
			return err
		}
		after = s
		return nil
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "stock.adjust", EntityType: "Stock", EntityID: &stockID, UserID: &userID,
			OldValues: before, Severity: severityFor(err), Success: false,
			ErrorMessage: err.Error(), Description: "ajuste de cantidad rechazado",
		})
		return nil, err
	}
	uc.auditor.Record(audit.Entry{
		Action: "stock.adjust", EntityType: "Stock", EntityID: &stockID, UserID: &userID,
		OldValues: before, NewValues: after, Success: true, Description: "ajuste de cantidad",
	})
	return toStockResponse(after), nil
}

// SetActive activa o desactiva un stock.
func (uc *LedgerUseCase) SetActive(ctx context.Context, stockID int64, active bool, userID int64) error {
	s, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.stockRepo.SetActive(stockID, active); err != nil {
		return err
	}
	uc.auditor.Record(audit.Entry{
		Action: "stock.set_active", EntityType: "Stock", EntityID: &stockID, UserID: &userID,
		NewValues: map[string]bool{"active": active}, Success: true,
	})
	return nil
}

// Delete elimina un stock: baja suave (desactivar) si tiene historial de
// asignaciones, baja dura en caso contrario.
func (uc *LedgerUseCase) Delete(ctx context.Context, stockID, userID int64) error {
	var soft bool
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, allocRepo repository.AllocationRepository) error {
		s, err := stockRepo.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		hasHistory, err := allocRepo.ExistsByStock(stockID)
		if err != nil {
			return err
		}
		if hasHistory {
			soft = true
			return stockRepo.SetActive(stockID, false)
		}
		return stockRepo.Delete(stockID)
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "stock.delete", EntityType: "Stock", EntityID: &stockID, UserID: &userID,
			Severity: severityFor(err), Success: false, ErrorMessage: err.Error(),
		})
		return err
	}
	action := "stock.delete"
	if soft {
		action = "stock.deactivate"
	}
	uc.auditor.Record(audit.Entry{
		Action: action, EntityType: "Stock", EntityID: &stockID, UserID: &userID, Success: true,
	})
	return nil
}

// GetByID obtiene un stock con sus campos derivados.
func (uc *LedgerUseCase) GetByID(ctx context.Context, stockID int64) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(s), nil
}

// List lista stocks con paginación.
func (uc *LedgerUseCase) List(ctx context.Context, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.stockRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// severityFor clasifica un error para la entrada de auditoría: las reglas de
// negocio son warning, el resto error.
func severityFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInactiveEntity),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		return entity.AuditSeverityWarning
	default:
		return entity.AuditSeverityError
	}
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:          s.ID,
		GoodID:      s.GoodID,
		DisasterID:  s.DisasterID,
		ShelterID:   s.ShelterID,
		Quantity:    s.Quantity,
		MaxCapacity: s.MaxCapacity,
		UnitCost:    s.UnitCost,
		Active:      s.Active,
		PercentFull: domstock.PercentFull(s.Quantity, s.MaxCapacity),
		Status:      domstock.StatusFor(s.Quantity, s.MaxCapacity),
		LastUpdated: s.LastUpdated,
		CreatedAt:   s.CreatedAt,
	}
}
