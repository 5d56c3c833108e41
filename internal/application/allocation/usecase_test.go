package allocation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appallocation "github.com/javierdrios/Socorro-api/internal/application/allocation"
	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
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

// UpsertShelterStock replica la semántica del upsert real: suma sobre la fila
// existente de (good, shelter) o crea una nueva; nunca deja filas gemelas.
func (r *fakeStockRepo) UpsertShelterStock(s *entity.Stock) (*entity.Stock, error) {
	for _, existing := range r.stocks {
		if existing.GoodID == s.GoodID && existing.ShelterID != nil && s.ShelterID != nil &&
			*existing.ShelterID == *s.ShelterID {
			existing.Quantity += s.Quantity
			existing.LastUpdated = s.LastUpdated
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

func (r *fakeStockRepo) SetActive(id int64, active bool) error { return nil }
func (r *fakeStockRepo) Delete(id int64) error                 { return nil }
func (r *fakeStockRepo) List(limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
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
	nextID      int64
	allocations map[int64]*entity.Allocation
	createErr   error
}

func newFakeAllocRepo() *fakeAllocRepo {
	return &fakeAllocRepo{allocations: map[int64]*entity.Allocation{}}
}

func (r *fakeAllocRepo) Create(a *entity.Allocation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	a.ID = r.nextID
	cp := *a
	r.allocations[a.ID] = &cp
	return nil
}

func (r *fakeAllocRepo) GetByID(id int64) (*entity.Allocation, error) {
	a, ok := r.allocations[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAllocRepo) GetByIDForUpdate(id int64) (*entity.Allocation, error) {
	return r.GetByID(id)
}

func (r *fakeAllocRepo) ExistsByStock(stockID int64) (bool, error) { return false, nil }
func (r *fakeAllocRepo) List(limit, offset int) ([]*entity.Allocation, error) {
	out := make([]*entity.Allocation, 0, len(r.allocations))
	for _, a := range r.allocations {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}
func (r *fakeAllocRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Allocation, error) {
	return nil, nil
}

type fakeDistRepo struct {
	nextID        int64
	distributions []*entity.Distribution
}

func (r *fakeDistRepo) Create(d *entity.Distribution) error {
	r.nextID++
	d.ID = r.nextID
	cp := *d
	r.distributions = append(r.distributions, &cp)
	return nil
}

func (r *fakeDistRepo) SumByAllocation(allocationID int64) (int64, error) {
	var sum int64
	for _, d := range r.distributions {
		if d.AllocationID == allocationID {
			sum += d.Quantity
		}
	}
	return sum, nil
}

func (r *fakeDistRepo) ListByAllocation(allocationID int64, limit, offset int) ([]*entity.Distribution, error) {
	var out []*entity.Distribution
	for _, d := range r.distributions {
		if d.AllocationID == allocationID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDistRepo) ListByEvacuee(evacueeID int64, limit, offset int) ([]*entity.Distribution, error) {
	return nil, nil
}

type fakeShelterRepo struct {
	shelters map[int64]*entity.Shelter
}

func (r *fakeShelterRepo) Create(s *entity.Shelter) error { return nil }
func (r *fakeShelterRepo) GetByID(id int64) (*entity.Shelter, error) {
	return r.shelters[id], nil
}
func (r *fakeShelterRepo) Update(s *entity.Shelter) error { return nil }
func (r *fakeShelterRepo) List(limit, offset int) ([]*entity.Shelter, error) {
	return nil, nil
}
func (r *fakeShelterRepo) ListByDisaster(disasterID int64, limit, offset int) ([]*entity.Shelter, error) {
	return nil, nil
}
func (r *fakeShelterRepo) ListAfter(afterID int64, limit int) ([]*entity.Shelter, error) {
	return nil, nil
}
func (r *fakeShelterRepo) Delete(id int64) error { return nil }

type fakeEvacueeRepo struct {
	evacuees map[int64]*entity.Evacuee
}

func (r *fakeEvacueeRepo) Create(e *entity.Evacuee) error { return nil }
func (r *fakeEvacueeRepo) GetByID(id int64) (*entity.Evacuee, error) {
	return r.evacuees[id], nil
}
func (r *fakeEvacueeRepo) Update(e *entity.Evacuee) error { return nil }
func (r *fakeEvacueeRepo) ListByShelter(shelterID int64, limit, offset int) ([]*entity.Evacuee, error) {
	return nil, nil
}
func (r *fakeEvacueeRepo) List(limit, offset int) ([]*entity.Evacuee, error) {
	return nil, nil
}
func (r *fakeEvacueeRepo) Delete(id int64) error { return nil }

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }

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

// fakeTxRunner simula el rollback restaurando el estado previo de los tres
// repositorios cuando fn falla.
type fakeTxRunner struct {
	stocks *fakeStockRepo
	allocs *fakeAllocRepo
	dists  *fakeDistRepo
}

var _ appallocation.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.StockRepository,
	repository.AllocationRepository,
	repository.DistributionRepository,
) error) error {
	stockSnap := r.stocks.clone()
	allocSnap := make(map[int64]*entity.Allocation, len(r.allocs.allocations))
	for id, a := range r.allocs.allocations {
		cp := *a
		allocSnap[id] = &cp
	}
	distSnap := make([]*entity.Distribution, len(r.dists.distributions))
	copy(distSnap, r.dists.distributions)

	if err := fn(r.stocks, r.allocs, r.dists); err != nil {
		r.stocks.stocks = stockSnap
		r.allocs.allocations = allocSnap
		r.dists.distributions = distSnap
		return err
	}
	return nil
}

type fixture struct {
	uc     *appallocation.ChainUseCase
	stocks *fakeStockRepo
	allocs *fakeAllocRepo
	dists  *fakeDistRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stocks := newFakeStockRepo()
	allocs := newFakeAllocRepo()
	dists := &fakeDistRepo{}
	shelters := &fakeShelterRepo{shelters: map[int64]*entity.Shelter{
		10: {ID: 10, Name: "Albergue Norte", Capacity: 300, Active: true},
		11: {ID: 11, Name: "Albergue Cerrado", Capacity: 100, Active: false},
	}}
	evacuees := &fakeEvacueeRepo{evacuees: map[int64]*entity.Evacuee{
		20: {ID: 20, FirstName: "Ana", LastName: "Pérez", Active: true},
	}}
	users := &fakeUserRepo{users: map[int64]*entity.User{
		1: {ID: 1, Name: "Coordinador", Role: "coordinador", Active: true},
	}}
	auditor := audit.NewRecorder(&fakeAuditRepo{}, nil, logger.New(logger.Config{Env: "production", Level: "error"}))
	uc := appallocation.NewChainUseCase(
		&fakeTxRunner{stocks: stocks, allocs: allocs, dists: dists},
		allocs, dists, shelters, evacuees, users, auditor,
	)
	return &fixture{uc: uc, stocks: stocks, allocs: allocs, dists: dists}
}

func (f *fixture) seedCentralStock(t *testing.T, qty, max int64) int64 {
	t.Helper()
	s := &entity.Stock{GoodID: 1, Quantity: qty, MaxCapacity: max, UnitCost: decimal.NewFromInt(10), Active: true}
	require.NoError(t, f.stocks.Create(s))
	return s.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// AllocateToShelter
// ──────────────────────────────────────────────────────────────────────────────

// Asignar 50 de un stock central de 200 debe decrementar el origen a 150,
// crear el stock del albergue con 50 y dejar exactamente una Allocation.
func TestAllocateToShelter_CreaStockDeAlbergue(t *testing.T) {
	f := newFixture(t)
	sourceID := f.seedCentralStock(t, 200, 500)

	resp, err := f.uc.AllocateToShelter(context.Background(), 1, dto.AllocateRequest{
		StockID: sourceID, ShelterID: 10, Quantity: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.Quantity)

	source, _ := f.stocks.GetByID(sourceID)
	assert.Equal(t, int64(150), source.Quantity, "el origen debe decrementarse")

	dest, err := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	require.NoError(t, err)
	require.NotNil(t, dest, "debe existir el stock del albergue")
	assert.Equal(t, int64(50), dest.Quantity)
	assert.Equal(t, source.MaxCapacity, dest.MaxCapacity, "hereda la capacidad del origen")

	allocs, _ := f.allocs.List(100, 0)
	assert.Len(t, allocs, 1)
}

// Una segunda asignación al mismo albergue incrementa el stock existente en
// vez de crear otro.
func TestAllocateToShelter_ReutilizaStockExistente(t *testing.T) {
	f := newFixture(t)
	sourceID := f.seedCentralStock(t, 200, 500)
	ctx := context.Background()

	_, err := f.uc.AllocateToShelter(ctx, 1, dto.AllocateRequest{StockID: sourceID, ShelterID: 10, Quantity: 50})
	require.NoError(t, err)
	_, err = f.uc.AllocateToShelter(ctx, 1, dto.AllocateRequest{StockID: sourceID, ShelterID: 10, Quantity: 30})
	require.NoError(t, err)

	dest, _ := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	assert.Equal(t, int64(80), dest.Quantity)

	var shelterStocks int
	for _, s := range f.stocks.stocks {
		if s.ShelterID != nil {
			shelterStocks++
		}
	}
	assert.Equal(t, 1, shelterStocks, "no debe duplicarse el stock del albergue")
}

// Asignaciones desde dos orígenes centrales distintos del mismo bien deben
// fusionarse en una sola fila de stock del albergue, con la cantidad sumada.
func TestAllocateToShelter_FusionaOrigenesDistintosEnUnaFila(t *testing.T) {
	f := newFixture(t)
	firstID := f.seedCentralStock(t, 200, 500)
	secondID := f.seedCentralStock(t, 100, 500)
	ctx := context.Background()

	_, err := f.uc.AllocateToShelter(ctx, 1, dto.AllocateRequest{StockID: firstID, ShelterID: 10, Quantity: 60})
	require.NoError(t, err)
	_, err = f.uc.AllocateToShelter(ctx, 1, dto.AllocateRequest{StockID: secondID, ShelterID: 10, Quantity: 40})
	require.NoError(t, err)

	dest, _ := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	require.NotNil(t, dest)
	assert.Equal(t, int64(100), dest.Quantity)

	var shelterStocks int
	for _, s := range f.stocks.stocks {
		if s.ShelterID != nil {
			shelterStocks++
		}
	}
	assert.Equal(t, 1, shelterStocks, "el mismo bien en el mismo albergue vive en una sola fila")
}

// Un stock ya ubicado en un albergue no puede servir de origen: solo la
// bodega central reparte.
func TestAllocateToShelter_RechazaOrigenNoCentral(t *testing.T) {
	f := newFixture(t)
	shelterID := int64(10)
	located := &entity.Stock{GoodID: 1, ShelterID: &shelterID, Quantity: 80, MaxCapacity: 500, UnitCost: decimal.NewFromInt(10), Active: true}
	require.NoError(t, f.stocks.Create(located))

	_, err := f.uc.AllocateToShelter(context.Background(), 1, dto.AllocateRequest{
		StockID: located.ID, ShelterID: 10, Quantity: 30,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	src, _ := f.stocks.GetByID(located.ID)
	assert.Equal(t, int64(80), src.Quantity, "el stock ubicado no debe tocarse")
}

// Cuando la suma en el destino supera su capacidad máxima, la asignación se
// rechaza y el rollback deshace el incremento.
func TestAllocateToShelter_RechazaExcesoDeCapacidad(t *testing.T) {
	f := newFixture(t)
	sourceID := f.seedCentralStock(t, 500, 100)
	ctx := context.Background()

	_, err := f.uc.AllocateToShelter(ctx, 1, dto.AllocateRequest{StockID: sourceID, ShelterID: 10, Quantity: 70})
	require.NoError(t, err)
	_, err = f.uc.AllocateToShelter(ctx, 1, dto.AllocateRequest{StockID: sourceID, ShelterID: 10, Quantity: 50})
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	dest, _ := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	require.NotNil(t, dest)
	assert.Equal(t, int64(70), dest.Quantity, "el destino conserva la cantidad previa")
	source, _ := f.stocks.GetByID(sourceID)
	assert.Equal(t, int64(430), source.Quantity, "solo la primera asignación descontó del origen")
}

func TestAllocateToShelter_RechazaInsuficiente(t *testing.T) {
	f := newFixture(t)
	sourceID := f.seedCentralStock(t, 40, 500)

	_, err := f.uc.AllocateToShelter(context.Background(), 1, dto.AllocateRequest{
		StockID: sourceID, ShelterID: 10, Quantity: 50,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	source, _ := f.stocks.GetByID(sourceID)
	assert.Equal(t, int64(40), source.Quantity)
}

func TestAllocateToShelter_RechazaAlbergueInactivo(t *testing.T) {
	f := newFixture(t)
	sourceID := f.seedCentralStock(t, 200, 500)

	_, err := f.uc.AllocateToShelter(context.Background(), 1, dto.AllocateRequest{
		StockID: sourceID, ShelterID: 11, Quantity: 50,
	})
	assert.ErrorIs(t, err, domain.ErrInactiveEntity)
}

// Si el último paso (insertar la Allocation) falla, ningún efecto parcial
// debe quedar visible: ni el decremento del origen ni el stock destino.
func TestAllocateToShelter_AtomicoAnteFalloDelUltimoPaso(t *testing.T) {
	f := newFixture(t)
	sourceID := f.seedCentralStock(t, 200, 500)
	f.allocs.createErr = errors.New("fallo simulado de inserción")

	_, err := f.uc.AllocateToShelter(context.Background(), 1, dto.AllocateRequest{
		StockID: sourceID, ShelterID: 10, Quantity: 50,
	})
	require.Error(t, err)

	source, _ := f.stocks.GetByID(sourceID)
	assert.Equal(t, int64(200), source.Quantity, "el origen debe quedar intacto tras el rollback")

	dest, _ := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	assert.Nil(t, dest, "el stock destino no debe sobrevivir al rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// DistributeToEvacuee
// ──────────────────────────────────────────────────────────────────────────────

func (f *fixture) seedAllocation(t *testing.T, qty int64) (allocationID int64) {
	t.Helper()
	sourceID := f.seedCentralStock(t, 200, 500)
	resp, err := f.uc.AllocateToShelter(context.Background(), 1, dto.AllocateRequest{
		StockID: sourceID, ShelterID: 10, Quantity: qty,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestDistributeToEvacuee_DecrementaStockDelAlbergue(t *testing.T) {
	f := newFixture(t)
	allocID := f.seedAllocation(t, 50)

	resp, err := f.uc.DistributeToEvacuee(context.Background(), 1, allocID, dto.DistributeRequest{
		EvacueeID: 20, Quantity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30), resp.Quantity)

	shelterStock, _ := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	assert.Equal(t, int64(20), shelterStock.Quantity)
}

// La cantidad acumulada distribuida nunca puede superar la asignada: con 30
// ya entregados de 50, entregar otros 30 debe rechazarse.
func TestDistributeToEvacuee_TopeAcumuladoPorAsignacion(t *testing.T) {
	f := newFixture(t)
	allocID := f.seedAllocation(t, 50)
	ctx := context.Background()

	_, err := f.uc.DistributeToEvacuee(ctx, 1, allocID, dto.DistributeRequest{EvacueeID: 20, Quantity: 30})
	require.NoError(t, err)

	_, err = f.uc.DistributeToEvacuee(ctx, 1, allocID, dto.DistributeRequest{EvacueeID: 20, Quantity: 30})
	require.ErrorIs(t, err, domain.ErrExceedsAllocation)

	// El rechazo no deja rastro: ni distribución ni decremento
	sum, _ := f.dists.SumByAllocation(allocID)
	assert.Equal(t, int64(30), sum)
	shelterStock, _ := f.stocks.FindByGoodAndShelterForUpdate(1, 10)
	assert.Equal(t, int64(20), shelterStock.Quantity)

	// Lo que resta (20) sí puede entregarse
	_, err = f.uc.DistributeToEvacuee(ctx, 1, allocID, dto.DistributeRequest{EvacueeID: 20, Quantity: 20})
	require.NoError(t, err)
}

func TestDistributeToEvacuee_RechazaCantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	allocID := f.seedAllocation(t, 50)

	_, err := f.uc.DistributeToEvacuee(context.Background(), 1, allocID, dto.DistributeRequest{
		EvacueeID: 20, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDistributeToEvacuee_AsignacionInexistente(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, 50)

	_, err := f.uc.DistributeToEvacuee(context.Background(), 1, 999, dto.DistributeRequest{
		EvacueeID: 20, Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
