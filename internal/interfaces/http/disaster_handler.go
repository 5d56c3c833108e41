package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/application/usecase"
)

// DisasterHandler maneja las peticiones HTTP para Disaster (protegido).
type DisasterHandler struct {
	uc *usecase.DisasterUseCase
}

// NewDisasterHandler construye el handler.
func NewDisasterHandler(uc *usecase.DisasterUseCase) *DisasterHandler {
	return &DisasterHandler{uc: uc}
}

// Create godoc
// @Summary      Declarar un desastre
// @Tags         disasters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDisasterRequest  true  "Datos del desastre"
// @Success      201   {object}  dto.DisasterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/disasters [post]
func (h *DisasterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDisasterRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener desastre por ID
// @Tags         disasters
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del desastre"
// @Success      200  {object}  dto.DisasterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/disasters/{id} [get]
func (h *DisasterHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar desastre (campos presentes)
// @Tags         disasters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del desastre"
// @Param        body  body  dto.UpdateDisasterRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.DisasterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/disasters/{id} [put]
func (h *DisasterHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateDisasterRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar desastres
// @Tags         disasters
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.DisasterListResponse
// @Router       /api/disasters [get]
func (h *DisasterHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar desastre (falla con CONFLICT si tiene albergues)
// @Tags         disasters
// @Security     Bearer
// @Param        id   path  int  true  "ID del desastre"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/disasters/{id} [delete]
func (h *DisasterHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
