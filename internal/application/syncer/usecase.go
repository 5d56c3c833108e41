package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/javierdrios/Socorro-api/internal/domain"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

const (
	pullPageSize   = 500
	pushBatchSize  = 100
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeSkipped = "skipped"
)

// Result resumen de una ejecución de sincronización.
type Result struct {
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Categories  int       `json:"categories"`
	Goods       int       `json:"goods"`
	Shelters    int       `json:"shelters"`
	Stocks      int       `json:"stocks"`
	AuditPushed int       `json:"audit_pushed"`
}

// UseCase orquesta la sincronización pull-then-push entre la base central y
// el almacén local: primero refresca el espejo de referencia, luego sube las
// entradas de auditoría encoladas. Una sola ejecución a la vez; las
// invocaciones solapadas devuelven ErrSyncRunning sin bloquear.
type UseCase struct {
	running atomic.Bool

	mirror       Mirror
	spool        SpoolDrainer
	auditRepo    repository.AuditLogRepository
	categoryRepo repository.CategoryRepository
	goodRepo     repository.ReliefGoodRepository
	shelterRepo  repository.ShelterRepository
	stockRepo    repository.StockRepository
	metrics      Metrics
	log          zerolog.Logger

	mu         sync.Mutex
	lastResult *Result
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	mirror Mirror,
	spool SpoolDrainer,
	auditRepo repository.AuditLogRepository,
	categoryRepo repository.CategoryRepository,
	goodRepo repository.ReliefGoodRepository,
	shelterRepo repository.ShelterRepository,
	stockRepo repository.StockRepository,
	metrics Metrics,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		mirror:       mirror,
		spool:        spool,
		auditRepo:    auditRepo,
		categoryRepo: categoryRepo,
		goodRepo:     goodRepo,
		shelterRepo:  shelterRepo,
		stockRepo:    stockRepo,
		metrics:      metrics,
		log:          log,
	}
}

// Run ejecuta una sincronización completa. Si ya hay una en curso devuelve
// domain.ErrSyncRunning.
func (uc *UseCase) Run(ctx context.Context) (*Result, error) {
	if !uc.running.CompareAndSwap(false, true) {
		uc.incRun(outcomeSkipped)
		return nil, domain.ErrSyncRunning
	}
	defer uc.running.Store(false)

	result := &Result{StartedAt: time.Now().UTC()}

	if err := uc.pull(ctx, result); err != nil {
		uc.incRun(outcomeError)
		uc.log.Error().Err(err).Msg("fallo en pull")
		return nil, err
	}
	if err := uc.push(ctx, result); err != nil {
		uc.incRun(outcomeError)
		uc.log.Error().Err(err).Msg("fallo en push")
		return nil, err
	}

	result.FinishedAt = time.Now().UTC()
	uc.mu.Lock()
	uc.lastResult = result
	uc.mu.Unlock()

	uc.incRun(outcomeOK)
	uc.log.Info().
		Int("categories", result.Categories).
		Int("goods", result.Goods).
		Int("shelters", result.Shelters).
		Int("stocks", result.Stocks).
		Int("audit_pushed", result.AuditPushed).
		Dur("elapsed", result.FinishedAt.Sub(result.StartedAt)).
		Msg("ejecución completada")
	return result, nil
}

// LastResult devuelve el resumen de la última ejecución exitosa, o nil.
func (uc *UseCase) LastResult() *Result {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastResult
}

// Running indica si hay una sincronización en curso.
func (uc *UseCase) Running() bool {
	return uc.running.Load()
}

// StartTicker lanza la goroutine que re-invoca Run cada interval hasta que el
// contexto se cancele.
func (uc *UseCase) StartTicker(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		uc.log.Info().Dur("interval", interval).Msg("temporizador iniciado")
		for {
			select {
			case <-ctx.Done():
				uc.log.Info().Msg("temporizador detenido")
				return
			case <-ticker.C:
				if _, err := uc.Run(ctx); err != nil {
					if errors.Is(err, domain.ErrSyncRunning) {
						uc.log.Debug().Msg("tick omitido, ejecución en curso")
						continue
					}
					uc.log.Warn().Err(err).Msg("ejecución periódica fallida")
				}
			}
		}
	}()
}

// pull barre las tablas de referencia con paginación por llave (id > último
// visto, ascendente): a diferencia de LIMIT/OFFSET, las escrituras
// concurrentes no corren las filas entre páginas, así que el barrido no salta
// ni repite ninguna.
func (uc *UseCase) pull(ctx context.Context, result *Result) error {
	snap := &Snapshot{PulledAt: time.Now().UTC()}

	for after := int64(0); ; {
		page, err := uc.categoryRepo.ListAfter(after, pullPageSize)
		if err != nil {
			return err
		}
		snap.Categories = append(snap.Categories, page...)
		if len(page) < pullPageSize {
			break
		}
		after = page[len(page)-1].ID
	}
	for after := int64(0); ; {
		page, err := uc.goodRepo.ListAfter(after, pullPageSize)
		if err != nil {
			return err
		}
		snap.Goods = append(snap.Goods, page...)
		if len(page) < pullPageSize {
			break
		}
		after = page[len(page)-1].ID
	}
	for after := int64(0); ; {
		page, err := uc.shelterRepo.ListAfter(after, pullPageSize)
		if err != nil {
			return err
		}
		snap.Shelters = append(snap.Shelters, page...)
		if len(page) < pullPageSize {
			break
		}
		after = page[len(page)-1].ID
	}
	for after := int64(0); ; {
		page, err := uc.stockRepo.ListAfter(after, pullPageSize)
		if err != nil {
			return err
		}
		snap.Stocks = append(snap.Stocks, page...)
		if len(page) < pullPageSize {
			break
		}
		after = page[len(page)-1].ID
	}

	if err := uc.mirror.Replace(ctx, snap); err != nil {
		return err
	}
	result.Categories = len(snap.Categories)
	result.Goods = len(snap.Goods)
	result.Shelters = len(snap.Shelters)
	result.Stocks = len(snap.Stocks)
	return nil
}

func (uc *UseCase) push(ctx context.Context, result *Result) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, err := uc.spool.Pending(pushBatchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		drained := make([]int64, 0, len(batch))
		for _, e := range batch {
			if err := uc.auditRepo.Create(e.Log); err != nil {
				// Las ya subidas de este lote sí se eliminan del spool.
				if len(drained) > 0 {
					if rmErr := uc.spool.Remove(drained); rmErr != nil {
						uc.log.Warn().Err(rmErr).Msg("no se pudo limpiar el spool")
					}
					result.AuditPushed += len(drained)
				}
				return err
			}
			drained = append(drained, e.SpoolID)
		}
		if err := uc.spool.Remove(drained); err != nil {
			return err
		}
		result.AuditPushed += len(drained)
	}
}

func (uc *UseCase) incRun(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncSyncRun(outcome)
	}
}
