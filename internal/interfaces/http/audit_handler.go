package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/audit"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
)

// AuditHandler expone la consulta del registro de auditoría (solo lectura).
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Search godoc
// @Summary      Consultar el registro de auditoría
// @Description  Siempre de más reciente a más antigua, con límite acotado.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        action       query  string  false  "Verbo de la acción"
// @Param        entity_type  query  string  false  "Tipo de entidad"
// @Param        severity     query  string  false  "info|warning|error|critical"
// @Param        user_id      query  int     false  "Usuario actuante"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {array}  dto.AuditLogResponse
// @Router       /api/audit [get]
func (h *AuditHandler) Search(c *fiber.Ctx) error {
	in := dto.AuditQueryRequest{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Severity:   c.Query("severity"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}
	// time.Time no lo decodifica el QueryParser de Fiber; se parsea a mano.
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC3339"})
		}
		in.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC3339"})
		}
		in.To = &t
	}
	if uid := int64(c.QueryInt("user_id", 0)); uid > 0 {
		in.UserID = &uid
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Search(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
