package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/dto"
	"github.com/javierdrios/Socorro-api/internal/application/usecase"
)

// ShelterHandler maneja las peticiones HTTP para Shelter (protegido).
type ShelterHandler struct {
	uc *usecase.ShelterUseCase
}

// NewShelterHandler construye el handler.
func NewShelterHandler(uc *usecase.ShelterUseCase) *ShelterHandler {
	return &ShelterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear albergue
// @Tags         shelters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelterRequest  true  "Datos del albergue"
// @Success      201   {object}  dto.ShelterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shelters [post]
func (h *ShelterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShelterRequest
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
// @Summary      Obtener albergue por ID
// @Tags         shelters
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del albergue"
// @Success      200  {object}  dto.ShelterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelters/{id} [get]
func (h *ShelterHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar albergue (campos presentes)
// @Tags         shelters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del albergue"
// @Param        body  body  dto.UpdateShelterRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ShelterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shelters/{id} [put]
func (h *ShelterHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateShelterRequest
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
// @Summary      Listar albergues, opcionalmente por desastre
// @Tags         shelters
// @Security     Bearer
// @Produce      json
// @Param        disaster_id  query  int  false  "Filtrar por desastre"
// @Param        limit        query  int  false  "Límite"  default(20)
// @Param        offset       query  int  false  "Offset"  default(0)
// @Success      200          {object}  dto.ShelterListResponse
// @Router       /api/shelters [get]
func (h *ShelterHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	disasterID := int64(c.QueryInt("disaster_id", 0))
	out, err := h.uc.List(disasterID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar albergue (falla con CONFLICT si tiene dependientes)
// @Tags         shelters
// @Security     Bearer
// @Param        id   path  int  true  "ID del albergue"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shelters/{id} [delete]
func (h *ShelterHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
