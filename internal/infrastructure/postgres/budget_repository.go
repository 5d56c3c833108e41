package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/javierdrios/Socorro-api/internal/domain/entity"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementación de BudgetRepository sobre PostgreSQL (usable con
// pool o tx).
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, name, admin_unit, year, total_amount, status, created_at, updated_at`

// Create persiste un presupuesto y asigna su id.
func (r *BudgetRepo) Create(budget *entity.Budget) error {
	query := `
		INSERT INTO budgets (name, admin_unit, year, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		budget.Name, budget.AdminUnit, budget.Year, budget.TotalAmount,
		budget.Status, budget.CreatedAt, budget.UpdatedAt,
	).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("insert budget: %w", translateErr(err))
	}
	return nil
}

// GetByID obtiene un presupuesto por ID.
func (r *BudgetRepo) GetByID(id int64) (*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get budget")
}

// GetByIDForUpdate bloquea la fila del presupuesto: el chequeo de suficiencia
// queda serializado frente a compras concurrentes.
func (r *BudgetRepo) GetByIDForUpdate(id int64) (*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get budget for update")
}

// UpdateStatus transiciona el estado del presupuesto.
func (r *BudgetRepo) UpdateStatus(id int64, status string) error {
	query := `UPDATE budgets SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update budget status: %w", err)
	}
	return nil
}

// List lista presupuestos, opcionalmente por año (0 = todos).
func (r *BudgetRepo) List(year int, limit, offset int) ([]*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE ($1 = 0 OR year = $1) ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, year, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []*entity.Budget
	for rows.Next() {
		var b entity.Budget
		if err := rows.Scan(
			&b.ID, &b.Name, &b.AdminUnit, &b.Year, &b.TotalAmount,
			&b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// SumItems devuelve la suma comprometida de un presupuesto (0 si no hay items).
func (r *BudgetRepo) SumItems(budgetID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM budget_items WHERE budget_id = $1`
	if err := r.q.QueryRow(context.Background(), query, budgetID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum budget items: %w", err)
	}
	return sum, nil
}

// CreateItem persiste un gasto y asigna su id.
func (r *BudgetRepo) CreateItem(item *entity.BudgetItem) error {
	query := `
		INSERT INTO budget_items (budget_id, category, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.BudgetID, item.Category, item.Description, item.Amount, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert budget item: %w", translateErr(err))
	}
	return nil
}

// ListItems lista los gastos de un presupuesto.
func (r *BudgetRepo) ListItems(budgetID int64, limit, offset int) ([]*entity.BudgetItem, error) {
	query := `
		SELECT id, budget_id, category, description, amount, created_at
		FROM budget_items WHERE budget_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, budgetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	var out []*entity.BudgetItem
	for rows.Next() {
		var it entity.BudgetItem
		if err := rows.Scan(&it.ID, &it.BudgetID, &it.Category, &it.Description, &it.Amount, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *BudgetRepo) scanOne(row pgx.Row, op string) (*entity.Budget, error) {
	var b entity.Budget
	err := row.Scan(
		&b.ID, &b.Name, &b.AdminUnit, &b.Year, &b.TotalAmount,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
