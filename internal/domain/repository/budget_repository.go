package repository

import (
	"github.com/shopspring/decimal"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
)

// BudgetRepository define el puerto de persistencia para presupuestos y sus
// gastos. SumItems lee la suma comprometida; dentro de una transacción con la
// fila del presupuesto bloqueada (GetByIDForUpdate) el chequeo de suficiencia
// queda serializado frente a compras concurrentes.
type BudgetRepository interface {
	Create(budget *entity.Budget) error
	GetByID(id int64) (*entity.Budget, error)
	GetByIDForUpdate(id int64) (*entity.Budget, error)
	UpdateStatus(id int64, status string) error
	List(year int, limit, offset int) ([]*entity.Budget, error)
	SumItems(budgetID int64) (decimal.Decimal, error)
	CreateItem(item *entity.BudgetItem) error
	ListItems(budgetID int64, limit, offset int) ([]*entity.BudgetItem, error)
}
