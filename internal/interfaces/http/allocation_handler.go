package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/allocation"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
)

// AllocationHandler maneja la cadena asignación → distribución (protegido).
type AllocationHandler struct {
	uc *allocation.ChainUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *allocation.ChainUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// Allocate godoc
// @Summary      Asignar stock central a un albergue
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateRequest  true  "Stock origen, albergue y cantidad"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK o CAPACITY_EXCEEDED"
// @Router       /api/allocations [post]
func (h *AllocationHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.AllocateToShelter(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Distribute godoc
// @Summary      Entregar parte de una asignación a un evacuado
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la asignación"
// @Param        body  body  dto.DistributeRequest  true  "Evacuado y cantidad"
// @Success      201   {object}  dto.DistributionResponse
// @Failure      409   {object}  dto.ErrorResponse  "EXCEEDS_ALLOCATION o INSUFFICIENT_STOCK"
// @Router       /api/allocations/{id}/distributions [post]
func (h *AllocationHandler) Distribute(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.DistributeRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.DistributeToEvacuee(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.AllocationResponse
// @Router       /api/allocations [get]
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDistributions godoc
// @Summary      Listar las distribuciones de una asignación
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID de la asignación"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.DistributionResponse
// @Router       /api/allocations/{id}/distributions [get]
func (h *AllocationHandler) ListDistributions(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListDistributions(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
