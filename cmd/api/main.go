package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/javierdrios/Socorro-api/internal/application/allocation"
	apparchive "github.com/javierdrios/Socorro-api/internal/application/archive"
	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/budget"
	"github.com/javierdrios/Socorro-api/internal/application/stock"
	"github.com/javierdrios/Socorro-api/internal/application/syncer"
	"github.com/javierdrios/Socorro-api/internal/application/usecase"
	"github.com/javierdrios/Socorro-api/internal/infrastructure/metrics"
	"github.com/javierdrios/Socorro-api/internal/infrastructure/postgres"
	"github.com/javierdrios/Socorro-api/internal/infrastructure/rediscache"
	"github.com/javierdrios/Socorro-api/internal/infrastructure/sqlite"
	httpRouter "github.com/javierdrios/Socorro-api/internal/interfaces/http"
	"github.com/javierdrios/Socorro-api/pkg/config"
	"github.com/javierdrios/Socorro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Base local: espejo de referencia + spool de auditoría (modo degradado).
	localDB, err := sqlite.Open(cfg.LocalDB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LocalDB.Path).Msg("base local sqlite")
	}
	defer localDB.Close()
	mirror := sqlite.NewMirror(localDB)
	spool := sqlite.NewSpool(localDB)

	// Caché de saldos: opcional, REDIS_ADDR vacío la desactiva.
	var balanceCache budget.BalanceCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se opera sin caché de saldos")
		} else {
			balanceCache = rediscache.NewBalanceCache(redisClient, log.Component("cache"))
		}
	}

	m := metrics.New()

	stockRepo := postgres.NewStockRepository(pool)
	allocRepo := postgres.NewAllocationRepository(pool)
	distRepo := postgres.NewDistributionRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	archiveRepo := postgres.NewArchiveRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	goodRepo := postgres.NewReliefGoodRepository(pool)
	disasterRepo := postgres.NewDisasterRepository(pool)
	shelterRepo := postgres.NewShelterRepository(pool)
	evacueeRepo := postgres.NewEvacueeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	auditor := audit.NewRecorder(auditRepo, spool, log.Component("audit"))

	stockUC := stock.NewLedgerUseCase(
		postgres.NewStockTxRunner(pool), stockRepo, goodRepo, auditor,
	)
	chainUC := allocation.NewChainUseCase(
		postgres.NewChainTxRunner(pool),
		allocRepo, distRepo, shelterRepo, evacueeRepo, userRepo, auditor,
	)
	budgetUC := budget.NewLedgerUseCase(
		postgres.NewBudgetTxRunner(pool), budgetRepo, balanceCache, auditor,
	)
	archiveUC := apparchive.NewUseCase(postgres.NewArchiveStore(pool), archiveRepo, auditor)
	auditUC := audit.NewQueryUseCase(auditRepo)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	goodUC := usecase.NewReliefGoodUseCase(goodRepo, categoryRepo)
	disasterUC := usecase.NewDisasterUseCase(disasterRepo)
	shelterUC := usecase.NewShelterUseCase(shelterRepo, disasterRepo)
	evacueeUC := usecase.NewEvacueeUseCase(evacueeRepo, shelterRepo)

	syncUC := syncer.NewUseCase(
		mirror, spool, auditRepo,
		categoryRepo, goodRepo, shelterRepo, stockRepo,
		m, log.Component("sync").Zerolog(),
	)
	if cfg.Sync.Enabled {
		syncUC.StartTicker(ctx, cfg.Sync.Interval)
		log.Info().Dur("interval", cfg.Sync.Interval).Msg("sincronización periódica habilitada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	mountSwagger(app, "./docs/swagger.json", log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:      stockUC,
		BudgetUC:     budgetUC,
		ChainUC:      chainUC,
		ArchiveUC:    archiveUC,
		AuditUC:      auditUC,
		SyncUC:       syncUC,
		Mirror:       mirror,
		CategoryUC:   categoryUC,
		ReliefGoodUC: goodUC,
		DisasterUC:   disasterUC,
		ShelterUC:    shelterUC,
		EvacueeUC:    evacueeUC,
		Metrics:      m,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel() // detiene el ticker de sincronización

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// mountSwagger sirve la UI de Swagger en /docs. El middleware entra en pánico
// si el archivo no existe, así que sin él la API arranca sin documentación.
func mountSwagger(app *fiber.App, filePath string, log *logger.Logger) {
	if _, err := os.Stat(filePath); err != nil {
		log.Warn().Err(err).Str("path", filePath).Msg("swagger.json no encontrado, /docs deshabilitado")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Socorro API",
	}))
}
