package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/application/usecase"
)

// EvacueeHandler maneja las peticiones HTTP para Evacuee (protegido).
type EvacueeHandler struct {
	uc *usecase.EvacueeUseCase
}

// NewEvacueeHandler construye el handler.
func NewEvacueeHandler(uc *usecase.EvacueeUseCase) *EvacueeHandler {
	return &EvacueeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar evacuado
// @Tags         evacuees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEvacueeRequest  true  "Datos del evacuado"
// @Success      201   {object}  dto.EvacueeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/evacuees [post]
func (h *EvacueeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEvacueeRequest
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
// @Summary      Obtener evacuado por ID
// @Tags         evacuees
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del evacuado"
// @Success      200  {object}  dto.EvacueeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/evacuees/{id} [get]
func (h *EvacueeHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar evacuado (campos presentes)
// @Tags         evacuees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del evacuado"
// @Param        body  body  dto.UpdateEvacueeRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.EvacueeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/evacuees/{id} [put]
func (h *EvacueeHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateEvacueeRequest
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
// @Summary      Listar evacuados, opcionalmente por albergue
// @Tags         evacuees
// @Security     Bearer
// @Produce      json
// @Param        shelter_id  query  int  false  "Filtrar por albergue"
// @Param        limit       query  int  false  "Límite"  default(20)
// @Param        offset      query  int  false  "Offset"  default(0)
// @Success      200         {object}  dto.EvacueeListResponse
// @Router       /api/evacuees [get]
func (h *EvacueeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	shelterID := int64(c.QueryInt("shelter_id", 0))
	out, err := h.uc.List(shelterID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evacuado (falla con CONFLICT si tiene entregas)
// @Tags         evacuees
// @Security     Bearer
// @Param        id   path  int  true  "ID del evacuado"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/evacuees/{id} [delete]
func (h *EvacueeHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
