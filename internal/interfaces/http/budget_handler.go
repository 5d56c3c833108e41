package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/application/budget"
	"github.com/javierdrios/Socorro-api/internal/application/dto"
)

// BudgetHandler maneja las peticiones HTTP del libro presupuestal (protegido).
type BudgetHandler struct {
	uc *budget.LedgerUseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *budget.LedgerUseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Create godoc
// @Summary      Crear presupuesto (nace en draft)
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBudgetRequest  true  "Datos del presupuesto"
// @Success      201   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBudgetRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateBudget(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddItem godoc
// @Summary      Registrar un gasto contra el presupuesto
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del presupuesto"
// @Param        body  body  dto.AddBudgetItemRequest  true  "Partida de gasto"
// @Success      201   {object}  dto.BudgetItemResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_BUDGET o BUDGET_NOT_ACTIVE"
// @Router       /api/budgets/{id}/items [post]
func (h *BudgetHandler) AddItem(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.AddBudgetItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.AddExpenditureItem(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Saldo disponible del presupuesto
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del presupuesto"
// @Success      200  {object}  dto.BudgetBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/balance [get]
func (h *BudgetHandler) GetBalance(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.GetBalance(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Transicionar el estado del presupuesto
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                          true  "ID del presupuesto"
// @Param        body  body  dto.SetBudgetStatusRequest  true  "Estado destino"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/budgets/{id}/status [put]
func (h *BudgetHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var in dto.SetBudgetStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.SetStatus(c.Context(), GetUserID(c), id, in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener presupuesto por ID
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del presupuesto"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id} [get]
func (h *BudgetHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar presupuestos, opcionalmente por año
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        year    query  int  false  "Filtrar por año"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.BudgetResponse
// @Router       /api/budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	year := c.QueryInt("year", 0)
	out, err := h.uc.List(c.Context(), year, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar los gastos de un presupuesto
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID del presupuesto"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.BudgetItemResponse
// @Router       /api/budgets/{id}/items [get]
func (h *BudgetHandler) ListItems(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListItems(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
