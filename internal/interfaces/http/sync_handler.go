package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/syncer"
)

// mirrorStatus lo que el handler necesita saber del espejo local. Lo
// implementa *sqlite.MirrorStore; la interfaz evita acoplar al driver.
type mirrorStatus interface {
	LastPulledAt(ctx context.Context) (time.Time, error)
}

// SyncHandler dispara y consulta la sincronización pull-then-push (admin).
type SyncHandler struct {
	uc     *syncer.UseCase
	mirror mirrorStatus
}

// NewSyncHandler construye el handler. mirror puede ser nil (sin base local).
func NewSyncHandler(uc *syncer.UseCase, mirror mirrorStatus) *SyncHandler {
	return &SyncHandler{uc: uc, mirror: mirror}
}

// Trigger godoc
// @Summary      Ejecutar una sincronización ahora
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  syncer.Result
// @Failure      409  {object}  dto.ErrorResponse  "SYNC_RUNNING"
// @Router       /api/sync/run [post]
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	result, err := h.uc.Run(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Status godoc
// @Summary      Estado de la sincronización y frescura del espejo local
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	body := fiber.Map{
		"running":     h.uc.Running(),
		"last_result": h.uc.LastResult(),
	}
	if h.mirror != nil {
		pulledAt, err := h.mirror.LastPulledAt(c.Context())
		if err == nil && !pulledAt.IsZero() {
			body["mirror_pulled_at"] = pulledAt
		}
	}
	return c.JSON(body)
}
