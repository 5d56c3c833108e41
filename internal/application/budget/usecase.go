package budget

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
)

// Transiciones de estado permitidas para un presupuesto.
var allowedTransitions = map[string][]string{
	entity.BudgetStatusDraft:    {entity.BudgetStatusApproved, entity.BudgetStatusClosed},
	entity.BudgetStatusApproved: {entity.BudgetStatusClosed},
	entity.BudgetStatusClosed:   {},
}

// LedgerUseCase opera el libro presupuestal: altas, carga de gastos con
// chequeo transaccional de suficiencia y consulta de saldo con caché.
type LedgerUseCase struct {
	txRunner   TxRunner
	budgetRepo repository.BudgetRepository
	cache      BalanceCache
	auditor    *audit.Recorder
}

// NewLedgerUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewLedgerUseCase(
	txRunner TxRunner,
	budgetRepo repository.BudgetRepository,
	cache BalanceCache,
	auditor *audit.Recorder,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:   txRunner,
		budgetRepo: budgetRepo,
		cache:      cache,
		auditor:    auditor,
	}
}

// CreateBudget da de alta un presupuesto en estado draft.
func (uc *LedgerUseCase) CreateBudget(ctx context.Context, userID int64, in dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
	if in.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b := &entity.Budget{
		Name:        in.Name,
		AdminUnit:   in.AdminUnit,
		Year:        in.Year,
		TotalAmount: in.TotalAmount,
		Status:      entity.BudgetStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.budgetRepo.Create(b); err != nil {
		return nil, err
	}
	uc.auditor.Record(audit.Entry{
		Action: "budget.create", EntityType: "Budget", EntityID: &b.ID, UserID: &userID,
		NewValues: b, Success: true, Description: "alta de presupuesto",
	})
	return toBudgetResponse(b), nil
}

// AddExpenditureItem carga un gasto contra el presupuesto. El chequeo de
// suficiencia lee la suma comprometida dentro de la misma transacción, con la
// fila del presupuesto bloqueada: dos compras concurrentes nunca pasan ambas
// contra una suma desactualizada.
func (uc *LedgerUseCase) AddExpenditureItem(ctx context.Context, userID, budgetID int64, in dto.AddBudgetItemRequest) (*dto.BudgetItemResponse, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var item *entity.BudgetItem
	var available decimal.Decimal
	err := uc.txRunner.Run(ctx, func(budgetRepo repository.BudgetRepository) error {
		b, err := budgetRepo.GetByIDForUpdate(budgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if !b.AcceptsItems() {
			return domain.ErrBudgetNotActive
		}
		spent, err := budgetRepo.SumItems(budgetID)
		if err != nil {
			return err
		}
		available = b.TotalAmount.Sub(spent)
		if in.Amount.GreaterThan(available) {
			return domain.ErrInsufficientBudget
		}
		item = &entity.BudgetItem{
			BudgetID:    budgetID,
			Category:    in.Category,
			Description: in.Description,
			Amount:      in.Amount,
			CreatedAt:   time.Now(),
		}
		return budgetRepo.CreateItem(item)
	})
	if err != nil {
		uc.auditor.Record(audit.Entry{
			Action: "budget.add_item", EntityType: "Budget", EntityID: &budgetID, UserID: &userID,
			NewValues: in, Severity: severityFor(err), Success: false,
			ErrorMessage: err.Error(), Description: "gasto rechazado",
		})
		if errors.Is(err, domain.ErrInsufficientBudget) {
			return nil, newInsufficientBudgetError(available)
		}
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, budgetID)
	}
	uc.auditor.Record(audit.Entry{
		Action: "budget.add_item", EntityType: "BudgetItem", EntityID: &item.ID, UserID: &userID,
		NewValues: item, Success: true, Description: "gasto cargado al presupuesto",
	})
	return toBudgetItemResponse(item), nil
}

// GetBalance devuelve el saldo disponible (total - suma de gastos), pasando
// por la caché cuando está disponible.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, budgetID int64) (*dto.BudgetBalanceResponse, error) {
	b, err := uc.budgetRepo.GetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if uc.cache != nil {
		if available, ok := uc.cache.Get(ctx, budgetID); ok {
			return &dto.BudgetBalanceResponse{
				BudgetID:    budgetID,
				TotalAmount: b.TotalAmount,
				Spent:       b.TotalAmount.Sub(available),
				Available:   available,
			}, nil
		}
	}
	spent, err := uc.budgetRepo.SumItems(budgetID)
	if err != nil {
		return nil, err
	}
	available := b.TotalAmount.Sub(spent)
	if uc.cache != nil {
		uc.cache.Set(ctx, budgetID, available)
	}
	return &dto.BudgetBalanceResponse{
		BudgetID:    budgetID,
		TotalAmount: b.TotalAmount,
		Spent:       spent,
		Available:   available,
	}, nil
}

// SetStatus transiciona el estado del presupuesto (draft→approved→closed).
// La validación y la escritura ocurren con la fila bloqueada: dos
// transiciones concurrentes desde el mismo estado no pueden pasar ambas.
func (uc *LedgerUseCase) SetStatus(ctx context.Context, userID, budgetID int64, status string) error {
	var oldStatus string
	err := uc.txRunner.Run(ctx, func(budgetRepo repository.BudgetRepository) error {
		b, err := budgetRepo.GetByIDForUpdate(budgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		allowed := false
		for _, s := range allowedTransitions[b.Status] {
			if s == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.ErrConflict
		}
		oldStatus = b.Status
		return budgetRepo.UpdateStatus(budgetID, status)
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, budgetID)
	}
	uc.auditor.Record(audit.Entry{
		Action: "budget.set_status", EntityType: "Budget", EntityID: &budgetID, UserID: &userID,
		OldValues: map[string]string{"status": oldStatus},
		NewValues: map[string]string{"status": status},
		Success:   true,
	})
	return nil
}

// GetByID obtiene un presupuesto.
func (uc *LedgerUseCase) GetByID(ctx context.Context, budgetID int64) (*dto.BudgetResponse, error) {
	b, err := uc.budgetRepo.GetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBudgetResponse(b), nil
}

// List lista presupuestos, opcionalmente filtrados por año (0 = todos).
func (uc *LedgerUseCase) List(ctx context.Context, year, limit, offset int) ([]dto.BudgetResponse, error) {
	list, err := uc.budgetRepo.List(year, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BudgetResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBudgetResponse(b))
	}
	return items, nil
}

// ListItems lista los gastos de un presupuesto.
func (uc *LedgerUseCase) ListItems(ctx context.Context, budgetID int64, limit, offset int) ([]dto.BudgetItemResponse, error) {
	b, err := uc.budgetRepo.GetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.budgetRepo.ListItems(budgetID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BudgetItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toBudgetItemResponse(it))
	}
	return items, nil
}

// InsufficientBudgetError envuelve ErrInsufficientBudget con el saldo
// disponible al momento del rechazo, para el mensaje al consumidor.
type InsufficientBudgetError struct {
	Available decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return "presupuesto insuficiente: disponible " + e.Available.String()
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientBudget).
func (e *InsufficientBudgetError) Unwrap() error {
	return domain.ErrInsufficientBudget
}

func newInsufficientBudgetError(available decimal.Decimal) error {
	return &InsufficientBudgetError{Available: available}
}

func severityFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBudget),
		errors.Is(err, domain.ErrBudgetNotActive),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		return entity.AuditSeverityWarning
	default:
		return entity.AuditSeverityError
	}
}

func toBudgetResponse(b *entity.Budget) *dto.BudgetResponse {
	if b == nil {
		return nil
	}
	return &dto.BudgetResponse{
		ID:          b.ID,
		Name:        b.Name,
		AdminUnit:   b.AdminUnit,
		Year:        b.Year,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

func toBudgetItemResponse(it *entity.BudgetItem) *dto.BudgetItemResponse {
	if it == nil {
		return nil
	}
	return &dto.BudgetItemResponse{
		ID:          it.ID,
		BudgetID:    it.BudgetID,
		Category:    it.Category,
		Description: it.Description,
		Amount:      it.Amount,
		CreatedAt:   it.CreatedAt,
	}
}
