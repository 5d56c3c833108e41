package budget_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	appbudget "github.com/javierdrios/Socorro-api/internal/application/budget"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
	"github.com/javierdrios/Socorro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBudgetRepo struct {
	nextID         int64
	nextItemID     int64
	budgets        map[int64]*entity.Budget
	items          []*entity.BudgetItem
	forUpdateCalls int
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: map[int64]*entity.Budget{}}
}

func (r *fakeBudgetRepo) Create(b *entity.Budget) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.budgets[b.ID] = &cp
	return nil
}

func (r *fakeBudgetRepo) GetByID(id int64) (*entity.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBudgetRepo) GetByIDForUpdate(id int64) (*entity.Budget, error) {
	r.forUpdateCalls++
	return r.GetByID(id)
}

func (r *fakeBudgetRepo) UpdateStatus(id int64, status string) error {
	b, ok := r.budgets[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBudgetRepo) List(year int, limit, offset int) ([]*entity.Budget, error) {
	out := make([]*entity.Budget, 0, len(r.budgets))
	for _, b := range r.budgets {
		if year > 0 && b.Year != year {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBudgetRepo) SumItems(budgetID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, it := range r.items {
		if it.BudgetID == budgetID {
			sum = sum.Add(it.Amount)
		}
	}
	return sum, nil
}

func (r *fakeBudgetRepo) CreateItem(item *entity.BudgetItem) error {
	r.nextItemID++
	item.ID = r.nextItemID
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeBudgetRepo) ListItems(budgetID int64, limit, offset int) ([]*entity.BudgetItem, error) {
	var out []*entity.BudgetItem
	for _, it := range r.items {
		if it.BudgetID == budgetID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	repo *fakeBudgetRepo
}

var _ appbudget.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.BudgetRepository) error) error {
	itemsSnap := make([]*entity.BudgetItem, len(r.repo.items))
	copy(itemsSnap, r.repo.items)
	if err := fn(r.repo); err != nil {
		r.repo.items = itemsSnap
		return err
	}
	return nil
}

type fakeCache struct {
	values        map[int64]decimal.Decimal
	invalidations []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[int64]decimal.Decimal{}}
}

func (c *fakeCache) Get(ctx context.Context, budgetID int64) (decimal.Decimal, bool) {
	v, ok := c.values[budgetID]
	return v, ok
}

func (c *fakeCache) Set(ctx context.Context, budgetID int64, available decimal.Decimal) {
	c.values[budgetID] = available
}

func (c *fakeCache) Invalidate(ctx context.Context, budgetID int64) {
	delete(c.values, budgetID)
	c.invalidations = append(c.invalidations, budgetID)
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(log *entity.AuditLog) error {
	r.entries = append(r.entries, log)
	return nil
}
func (r *fakeAuditRepo) Search(filter repository.AuditFilter) ([]*entity.AuditLog, error) {
	return r.entries, nil
}

func newTestUseCase(t *testing.T) (*appbudget.LedgerUseCase, *fakeBudgetRepo, *fakeCache) {
	t.Helper()
	repo := newFakeBudgetRepo()
	cache := newFakeCache()
	auditor := audit.NewRecorder(&fakeAuditRepo{}, nil, logger.New(logger.Config{Env: "production", Level: "error"}))
	uc := appbudget.NewLedgerUseCase(&fakeTxRunner{repo: repo}, repo, cache, auditor)
	return uc, repo, cache
}

func seedBudget(t *testing.T, repo *fakeBudgetRepo, total int64, status string) int64 {
	t.Helper()
	b := &entity.Budget{
		Name: "Atención inundaciones", AdminUnit: "Gestión del Riesgo", Year: 2026,
		TotalAmount: decimal.NewFromInt(total), Status: status,
	}
	require.NoError(t, repo.Create(b))
	return b.ID
}

func addItem(t *testing.T, uc *appbudget.LedgerUseCase, budgetID, amount int64) error {
	t.Helper()
	_, err := uc.AddExpenditureItem(context.Background(), 1, budgetID, dto.AddBudgetItemRequest{
		Category: "compras", Description: "mercados", Amount: decimal.NewFromInt(amount),
	})
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// AddExpenditureItem: no sobregirar jamás
// ──────────────────────────────────────────────────────────────────────────────

// Con 5000 de total y 4000 comprometidos, un gasto de 1500 debe rechazarse
// informando el disponible exacto (1000).
func TestAddExpenditureItem_RechazaSobregiro(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)
	require.NoError(t, addItem(t, uc, id, 4000))

	err := addItem(t, uc, id, 1500)
	require.ErrorIs(t, err, domain.ErrInsufficientBudget)

	var insufficient *appbudget.InsufficientBudgetError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(1000)),
		"el error debe informar el disponible exacto, obtuvo %s", insufficient.Available)

	sum, _ := repo.SumItems(id)
	assert.True(t, sum.Equal(decimal.NewFromInt(4000)), "el gasto rechazado no debe persistirse")
}

// El gasto que consume exactamente el disponible sí pasa; el siguiente no.
func TestAddExpenditureItem_AceptaHastaElTope(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)
	require.NoError(t, addItem(t, uc, id, 4000))

	require.NoError(t, addItem(t, uc, id, 1000))
	require.ErrorIs(t, addItem(t, uc, id, 1), domain.ErrInsufficientBudget)

	sum, _ := repo.SumItems(id)
	assert.True(t, sum.Equal(decimal.NewFromInt(5000)))
}

func TestAddExpenditureItem_RechazaMontoNoPositivo(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)

	assert.ErrorIs(t, addItem(t, uc, id, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, addItem(t, uc, id, -10), domain.ErrInvalidInput)
}

// Un presupuesto cerrado no acepta gastos.
func TestAddExpenditureItem_PresupuestoCerrado(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusClosed)

	assert.ErrorIs(t, addItem(t, uc, id, 100), domain.ErrBudgetNotActive)
}

// Cada gasto aceptado invalida la clave cacheada del saldo.
func TestAddExpenditureItem_InvalidaCache(t *testing.T) {
	uc, repo, cache := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)
	cache.Set(context.Background(), id, decimal.NewFromInt(5000))

	require.NoError(t, addItem(t, uc, id, 100))
	assert.Contains(t, cache.invalidations, id)
	_, ok := cache.Get(context.Background(), id)
	assert.False(t, ok, "la clave debe quedar invalidada")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetBalance
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBalance_CalculaYCachea(t *testing.T) {
	uc, repo, cache := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)
	require.NoError(t, addItem(t, uc, id, 1200))

	resp, err := uc.GetBalance(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, resp.Spent.Equal(decimal.NewFromInt(1200)))
	assert.True(t, resp.Available.Equal(decimal.NewFromInt(3800)))

	cached, ok := cache.Get(context.Background(), id)
	require.True(t, ok, "el saldo calculado debe quedar cacheado")
	assert.True(t, cached.Equal(decimal.NewFromInt(3800)))
}

func TestGetBalance_UsaCacheSiHayHit(t *testing.T) {
	uc, repo, cache := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)
	cache.Set(context.Background(), id, decimal.NewFromInt(4200))

	resp, err := uc.GetBalance(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, resp.Available.Equal(decimal.NewFromInt(4200)))
	assert.True(t, resp.Spent.Equal(decimal.NewFromInt(800)))
}

func TestGetBalance_PresupuestoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.GetBalance(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateBudget y transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBudget_NaceEnDraft(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	resp, err := uc.CreateBudget(context.Background(), 1, dto.CreateBudgetRequest{
		Name: "Reserva sismos", AdminUnit: "Gestión del Riesgo", Year: 2026,
		TotalAmount: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetStatusDraft, resp.Status)
}

func TestCreateBudget_RechazaTotalNoPositivo(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.CreateBudget(context.Background(), 1, dto.CreateBudgetRequest{
		Name: "Vacío", AdminUnit: "GR", Year: 2026, TotalAmount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStatus_TransicionesPermitidas(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	ctx := context.Background()
	id := seedBudget(t, repo, 5000, entity.BudgetStatusDraft)

	require.NoError(t, uc.SetStatus(ctx, 1, id, entity.BudgetStatusApproved))
	require.NoError(t, uc.SetStatus(ctx, 1, id, entity.BudgetStatusClosed))

	// closed es terminal
	err := uc.SetStatus(ctx, 1, id, entity.BudgetStatusApproved)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// La transición valida y escribe con la fila bloqueada: la lectura pasa por
// GetByIDForUpdate dentro de la transacción, no por una lectura suelta.
func TestSetStatus_ValidaConLaFilaBloqueada(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusDraft)

	require.NoError(t, uc.SetStatus(context.Background(), 1, id, entity.BudgetStatusApproved))
	assert.Equal(t, 1, repo.forUpdateCalls, "la validación lee con bloqueo de fila")

	err := uc.SetStatus(context.Background(), 1, id, entity.BudgetStatusDraft)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 2, repo.forUpdateCalls, "también el rechazo decide sobre la fila bloqueada")

	b, _ := repo.GetByID(id)
	assert.Equal(t, entity.BudgetStatusApproved, b.Status)
}

func TestSetStatus_RechazaSaltoInvalido(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	id := seedBudget(t, repo, 5000, entity.BudgetStatusApproved)

	// approved no puede volver a draft
	err := uc.SetStatus(context.Background(), 1, id, entity.BudgetStatusDraft)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
