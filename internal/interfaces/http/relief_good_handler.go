package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/application/usecase"
)

// ReliefGoodHandler maneja las peticiones HTTP para ReliefGood (protegido).
type ReliefGoodHandler struct {
	uc *usecase.ReliefGoodUseCase
}

// NewReliefGoodHandler construye el handler.
func NewReliefGoodHandler(uc *usecase.ReliefGoodUseCase) *ReliefGoodHandler {
	return &ReliefGoodHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bien de ayuda
// @Tags         goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReliefGoodRequest  true  "Datos del bien"
// @Success      201   {object}  dto.ReliefGoodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/goods [post]
func (h *ReliefGoodHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReliefGoodRequest
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
// @Summary      Obtener bien por ID
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del bien"
// @Success      200  {object}  dto.ReliefGoodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [get]
func (h *ReliefGoodHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar bien (campos presentes)
// @Tags         goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del bien"
// @Param        body  body  dto.UpdateReliefGoodRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ReliefGoodResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [put]
func (h *ReliefGoodHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateReliefGoodRequest
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
// @Summary      Listar bienes, opcionalmente por categoría
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int  false  "Filtrar por categoría"
// @Param        limit        query  int  false  "Límite"  default(20)
// @Param        offset       query  int  false  "Offset"  default(0)
// @Success      200          {object}  dto.ReliefGoodListResponse
// @Router       /api/goods [get]
func (h *ReliefGoodHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	categoryID := int64(c.QueryInt("category_id", 0))
	out, err := h.uc.List(categoryID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bien (falla con CONFLICT si tiene stocks)
// @Tags         goods
// @Security     Bearer
// @Param        id   path  int  true  "ID del bien"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [delete]
func (h *ReliefGoodHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
