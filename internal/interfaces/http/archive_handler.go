package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/archive"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
)

// ArchiveHandler maneja el archivo genérico (borrado suave; protegido).
type ArchiveHandler struct {
	uc *archive.UseCase
}

// NewArchiveHandler construye el handler.
func NewArchiveHandler(uc *archive.UseCase) *ArchiveHandler {
	return &ArchiveHandler{uc: uc}
}

// Archive godoc
// @Summary      Archivar un registro (borrado suave con instantánea)
// @Tags         archives
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArchiveRequest  true  "Tipo, id y motivo"
// @Success      201   {object}  dto.ArchiveResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/archives [post]
func (h *ArchiveHandler) Archive(c *fiber.Ctx) error {
	var in dto.ArchiveRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Archive(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Restore godoc
// @Summary      Restaurar un registro archivado conservando su id original
// @Tags         archives
// @Security     Bearer
// @Param        id   path  int  true  "ID del sobre de archivo"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse  "TYPE_MISMATCH"
// @Router       /api/archives/{id}/restore [post]
func (h *ArchiveHandler) Restore(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Restore(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Explorar el archivo (sin instantáneas)
// @Tags         archives
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "Filtrar por tipo"
// @Param        q            query  string  false  "Buscar en el nombre a mostrar"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.ArchiveListResponse
// @Router       /api/archives [get]
func (h *ArchiveHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("entity_type"), c.Query("q"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un sobre de archivo con su instantánea
// @Tags         archives
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del sobre"
// @Success      200  {object}  dto.ArchiveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/archives/{id} [get]
func (h *ArchiveHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Purgar definitivamente un sobre de archivo
// @Tags         archives
// @Security     Bearer
// @Param        id   path  int  true  "ID del sobre"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/archives/{id} [delete]
func (h *ArchiveHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.PermanentlyDelete(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
