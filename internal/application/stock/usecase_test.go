package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
	appstock "github.com/javierdrios/Socorro-api/internal/application/stock"
	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
	"github.com/javierdrios/Socorro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	nextID int64
	stocks map[int64]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: map[int64]*entity.Stock{}}
}

func (r *fakeStockRepo) Create(s *entity.Stock) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.stocks[s.ID] = &cp
	return nil
}

func (r *fakeStockRepo) GetByID(id int64) (*entity.Stock, error) {
	s, ok := r.stocks[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStockRepo) GetByIDForUpdate(id int64) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *fakeStockRepo) FindByGoodAndShelterForUpdate(goodID, shelterID int64) (*entity.Stock, error) {
	for _, s := range r.stocks {
		if s.GoodID == goodID && s.ShelterID != nil && *s.ShelterID == shelterID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) UpsertShelterStock(s *entity.Stock) (*entity.Stock, error) {
	for _, existing := range r.stocks {
		if existing.GoodID == s.GoodID && existing.ShelterID != nil && s.ShelterID != nil &&
			*existing.ShelterID == *s.ShelterID {
			existing.Quantity += s.Quantity
			cp := *existing
			return &cp, nil
		}
	}
	if err := r.Create(s); err != nil {
		return nil, err
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStockRepo) Update(s *entity.Stock) error {
	if _, ok := r.stocks[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.stocks[s.ID] = &cp
	return nil
}

func (r *fakeStockRepo) SetActive(id int64, active bool) error {
	s, ok := r.stocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = active
	return nil
}

func (r *fakeStockRepo) Delete(id int64) error {
	delete(r.stocks, id)
	return nil
}

func (r *fakeStockRepo) List(limit, offset int) ([]*entity.Stock, error) {
	out := make([]*entity.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStockRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListAfter(afterID int64, limit int) ([]*entity.Stock, error) {
	return nil, nil
}

func (r *fakeStockRepo) clone() map[int64]*entity.Stock {
	snap := make(map[int64]*entity.Stock, len(r.stocks))
	for id, s := range r.stocks {
		cp := *s
		snap[id] = &cp
	}
	return snap
}

type fakeAllocRepo struct {
	withHistory map[int64]bool
	createErr   error
}

func (r *fakeAllocRepo) Create(a *entity.Allocation) error { return r.createErr }
func (r *fakeAllocRepo) GetByID(id int64) (*entity.Allocation, error) {
	return nil, nil
}
func (r *fakeAllocRepo) GetByIDForUpdate(id int64) (*entity.Allocation, error) {
	return nil, nil
}
func (r *fakeAllocRepo) ExistsByStock(stockID int64) (bool, error) {
	return r.withHistory[stockID], nil
}
func (r *fakeAllocRepo) List(limit, offset int) ([]*entity.Allocation, error) { return nil, nil }
func (r *fakeAllocRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Allocation, error) {
	return nil, nil
}

type fakeGoodRepo struct {
	goods map[int64]*entity.ReliefGood
}

func (r *fakeGoodRepo) Create(g *entity.ReliefGood) error { return nil }
func (r *fakeGoodRepo) GetByID(id int64) (*entity.ReliefGood, error) {
	return r.goods[id], nil
}
func (r *fakeGoodRepo) Update(g *entity.ReliefGood) error { return nil }
func (r *fakeGoodRepo) List(limit, offset int) ([]*entity.ReliefGood, error) {
	return nil, nil
}
func (r *fakeGoodRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.ReliefGood, error) {
	return nil, nil
}
func (r *fakeGoodRepo) ListAfter(afterID int64, limit int) ([]*entity.ReliefGood, error) {
	return nil, nil
}
func (r *fakeGoodRepo) Delete(id int64) error { return nil }

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

func (r *fakeAuditRepo) last() *entity.AuditLog {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

// fakeTxRunner llama a fn directamente; si fn falla restaura el estado previo
// del repo de stocks, simulando el rollback de la transacción.
type fakeTxRunner struct {
	stocks *fakeStockRepo
	allocs *fakeAllocRepo
}

var _ appstock.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.AllocationRepository) error) error {
	snap := r.stocks.clone()
	if err := fn(r.stocks, r.allocs); err != nil {
		r.stocks.stocks = snap
		return err
	}
	return nil
}

func newTestUseCase(t *testing.T) (*appstock.LedgerUseCase, *fakeStockRepo, *fakeAllocRepo, *fakeAuditRepo) {
	t.Helper()
	stocks := newFakeStockRepo()
	allocs := &fakeAllocRepo{withHistory: map[int64]bool{}}
	audits := &fakeAuditRepo{}
	goods := &fakeGoodRepo{goods: map[int64]*entity.ReliefGood{
		1: {ID: 1, Name: "Kit de aseo", Unit: "kit", Active: true},
	}}
	auditor := audit.NewRecorder(audits, nil, logger.New(logger.Config{Env: "production", Level: "error"}))
	uc := appstock.NewLedgerUseCase(&fakeTxRunner{stocks: stocks, allocs: allocs}, stocks, goods, auditor)
	return uc, stocks, allocs, audits
}

func seedStock(t *testing.T, repo *fakeStockRepo, qty, max int64) int64 {
	t.Helper()
	s := &entity.Stock{GoodID: 1, Quantity: qty, MaxCapacity: max, UnitCost: decimal.NewFromInt(10), Active: true}
	require.NoError(t, repo.Create(s))
	return s.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustQuantity
// ──────────────────────────────────────────────────────────────────────────────

// Un retiro mayor a la existencia debe rechazarse y la cantidad quedar intacta.
func TestAdjustQuantity_RechazaRetiroMayorALaExistencia(t *testing.T) {
	uc, stocks, _, audits := newTestUseCase(t)
	id := seedStock(t, stocks, 100, 500)

	_, err := uc.AdjustQuantity(context.Background(), id, -150, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	s, err := stocks.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.Quantity, "la cantidad no debe cambiar tras un rechazo")

	entry := audits.last()
	require.NotNil(t, entry, "el rechazo también se audita")
	assert.False(t, entry.Success)
	assert.Equal(t, entity.AuditSeverityWarning, entry.Severity)
}

// Un ingreso que desborda la capacidad máxima debe rechazarse.
func TestAdjustQuantity_RechazaDesbordeDeCapacidad(t *testing.T) {
	uc, stocks, _, _ := newTestUseCase(t)
	id := seedStock(t, stocks, 450, 500)

	_, err := uc.AdjustQuantity(context.Background(), id, 100, 1)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	s, _ := stocks.GetByID(id)
	assert.Equal(t, int64(450), s.Quantity)
}

// Secuencia de ajustes válidos e inválidos: los válidos se acumulan, los
// inválidos no dejan rastro.
func TestAdjustQuantity_SecuenciaDeAjustes(t *testing.T) {
	uc, stocks, _, _ := newTestUseCase(t)
	id := seedStock(t, stocks, 100, 500)
	ctx := context.Background()

	resp, err := uc.AdjustQuantity(ctx, id, 50, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(150), resp.Quantity)

	resp, err = uc.AdjustQuantity(ctx, id, -150, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Quantity)

	_, err = uc.AdjustQuantity(ctx, id, -1, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	s, _ := stocks.GetByID(id)
	assert.Equal(t, int64(0), s.Quantity)
}

// Delta cero no es un ajuste.
func TestAdjustQuantity_RechazaDeltaCero(t *testing.T) {
	uc, stocks, _, _ := newTestUseCase(t)
	id := seedStock(t, stocks, 100, 500)

	_, err := uc.AdjustQuantity(context.Background(), id, 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustQuantity_StockInexistente(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.AdjustQuantity(context.Background(), 999, 10, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateStock_ValidaLimites(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	casos := []struct {
		nombre string
		req    dto.CreateStockRequest
	}{
		{"cantidad negativa", dto.CreateStockRequest{GoodID: 1, Quantity: -1, MaxCapacity: 100}},
		{"capacidad cero", dto.CreateStockRequest{GoodID: 1, Quantity: 0, MaxCapacity: 0}},
		{"cantidad mayor a capacidad", dto.CreateStockRequest{GoodID: 1, Quantity: 101, MaxCapacity: 100}},
		{"costo negativo", dto.CreateStockRequest{GoodID: 1, Quantity: 10, MaxCapacity: 100, UnitCost: decimal.NewFromInt(-1)}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.CreateStock(ctx, 1, c.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateStock_BienInexistente(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.CreateStock(context.Background(), 1, dto.CreateStockRequest{
		GoodID: 42, Quantity: 10, MaxCapacity: 100,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateStock_DevuelveCamposDerivados(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	resp, err := uc.CreateStock(context.Background(), 1, dto.CreateStockRequest{
		GoodID: 1, Quantity: 25, MaxCapacity: 100, UnitCost: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, resp.PercentFull, 0.001)
	assert.Equal(t, "low", resp.Status)
	assert.True(t, resp.Active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: baja suave con historial, dura sin él
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_BajaSuaveConHistorialDeAsignaciones(t *testing.T) {
	uc, stocks, allocs, _ := newTestUseCase(t)
	id := seedStock(t, stocks, 100, 500)
	allocs.withHistory[id] = true

	require.NoError(t, uc.Delete(context.Background(), id, 1))

	s, _ := stocks.GetByID(id)
	require.NotNil(t, s, "con historial la fila se conserva")
	assert.False(t, s.Active, "debe quedar desactivada")
}

func TestDelete_BajaDuraSinHistorial(t *testing.T) {
	uc, stocks, _, _ := newTestUseCase(t)
	id := seedStock(t, stocks, 100, 500)

	require.NoError(t, uc.Delete(context.Background(), id, 1))

	s, _ := stocks.GetByID(id)
	assert.Nil(t, s, "sin historial la fila desaparece")
}
