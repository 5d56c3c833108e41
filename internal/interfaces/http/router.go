package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/javierdrios/Socorro-api/internal/application/allocation"
	"github.com/javierdrios/Socorro-api/internal/application/archive"
	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/budget"
	"github.com/javierdrios/Socorro-api/internal/application/stock"
	"github.com/javierdrios/Socorro-api/internal/application/syncer"
	"github.com/javierdrios/Socorro-api/internal/application/usecase"
	"github.com/javierdrios/Socorro-api/internal/infrastructure/metrics"
)

// Roles reconocidos por la API.
const (
	RoleAdmin       = "admin"
	RoleCoordinador = "coordinador"
	RoleVoluntario  = "voluntario"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC      *stock.LedgerUseCase
	BudgetUC     *budget.LedgerUseCase
	ChainUC      *allocation.ChainUseCase
	ArchiveUC    *archive.UseCase
	AuditUC      *audit.QueryUseCase
	SyncUC       *syncer.UseCase // nil deshabilita las rutas de sync
	Mirror       mirrorStatus    // nil si no hay base local
	CategoryUC   *usecase.CategoryUseCase
	ReliefGoodUC *usecase.ReliefGoodUseCase
	DisasterUC   *usecase.DisasterUseCase
	ShelterUC    *usecase.ShelterUseCase
	EvacueeUC    *usecase.EvacueeUseCase
	Metrics      *metrics.Metrics // nil deshabilita /metrics y el middleware
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(deps.Metrics.Handler())
		app.Get("/metrics", func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	canManage := RequireRole(RoleAdmin, RoleCoordinador)
	adminOnly := RequireRole(RoleAdmin)

	// Stocks (protegido; escrituras solo admin/coordinador)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Post("/", canManage, stockHandler.Create)
	stocks.Post("/:id/adjust", canManage, stockHandler.Adjust)
	stocks.Put("/:id/active", canManage, stockHandler.SetActive)
	stocks.Delete("/:id", adminOnly, stockHandler.Delete)

	// Budgets (protegido; solo admin)
	budgets := protected.Group("/budgets", adminOnly)
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets.Get("/", budgetHandler.List)
	budgets.Post("/", budgetHandler.Create)
	budgets.Get("/:id", budgetHandler.GetByID)
	budgets.Get("/:id/balance", budgetHandler.GetBalance)
	budgets.Put("/:id/status", budgetHandler.SetStatus)
	budgets.Get("/:id/items", budgetHandler.ListItems)
	budgets.Post("/:id/items", budgetHandler.AddItem)

	// Allocations y distribuciones (protegido; distribuir lo puede el
	// voluntario en terreno, asignar no)
	allocations := protected.Group("/allocations")
	allocationHandler := NewAllocationHandler(deps.ChainUC)
	allocations.Get("/", allocationHandler.List)
	allocations.Post("/", canManage, allocationHandler.Allocate)
	allocations.Get("/:id/distributions", allocationHandler.ListDistributions)
	allocations.Post("/:id/distributions",
		RequireRole(RoleAdmin, RoleCoordinador, RoleVoluntario),
		allocationHandler.Distribute)

	// Archivo genérico (protegido; solo admin)
	archives := protected.Group("/archives", adminOnly)
	archiveHandler := NewArchiveHandler(deps.ArchiveUC)
	archives.Get("/", archiveHandler.List)
	archives.Post("/", archiveHandler.Archive)
	archives.Get("/:id", archiveHandler.GetByID)
	archives.Post("/:id/restore", archiveHandler.Restore)
	archives.Delete("/:id", archiveHandler.Delete)

	// Auditoría (protegido; solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", adminOnly, auditHandler.Search)

	// Sincronización (protegido; solo admin)
	if deps.SyncUC != nil {
		sync := protected.Group("/sync", adminOnly)
		syncHandler := NewSyncHandler(deps.SyncUC, deps.Mirror)
		sync.Post("/run", syncHandler.Trigger)
		sync.Get("/status", syncHandler.Status)
	}

	// Tablas de referencia (protegido; escrituras admin/coordinador)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", canManage, categoryHandler.Create)
	categories.Put("/:id", canManage, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	goods := protected.Group("/goods")
	goodHandler := NewReliefGoodHandler(deps.ReliefGoodUC)
	goods.Get("/", goodHandler.List)
	goods.Get("/:id", goodHandler.GetByID)
	goods.Post("/", canManage, goodHandler.Create)
	goods.Put("/:id", canManage, goodHandler.Update)
	goods.Delete("/:id", adminOnly, goodHandler.Delete)

	disasters := protected.Group("/disasters")
	disasterHandler := NewDisasterHandler(deps.DisasterUC)
	disasters.Get("/", disasterHandler.List)
	disasters.Get("/:id", disasterHandler.GetByID)
	disasters.Post("/", canManage, disasterHandler.Create)
	disasters.Put("/:id", canManage, disasterHandler.Update)
	disasters.Delete("/:id", adminOnly, disasterHandler.Delete)

	shelters := protected.Group("/shelters")
	shelterHandler := NewShelterHandler(deps.ShelterUC)
	shelters.Get("/", shelterHandler.List)
	shelters.Get("/:id", shelterHandler.GetByID)
	shelters.Post("/", canManage, shelterHandler.Create)
	shelters.Put("/:id", canManage, shelterHandler.Update)
	shelters.Delete("/:id", adminOnly, shelterHandler.Delete)

	evacuees := protected.Group("/evacuees")
	evacueeHandler := NewEvacueeHandler(deps.EvacueeUC)
	evacuees.Get("/", evacueeHandler.List)
	evacuees.Get("/:id", evacueeHandler.GetByID)
	evacuees.Post("/", RequireRole(RoleAdmin, RoleCoordinador, RoleVoluntario), evacueeHandler.Create)
	evacuees.Put("/:id", canManage, evacueeHandler.Update)
	evacuees.Delete("/:id", adminOnly, evacueeHandler.Delete)
}
