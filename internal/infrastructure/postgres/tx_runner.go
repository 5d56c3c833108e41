package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/javierdrios/Socorro-api/internal/application/allocation"
	"github.com/javierdrios/Socorro-api/internal/application/budget"
	"github.com/javierdrios/Socorro-api/internal/application/stock"
	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

var (
	_ stock.TxRunner      = (*StockTxRunner)(nil)
	_ allocation.TxRunner = (*ChainTxRunner)(nil)
	_ budget.TxRunner     = (*BudgetTxRunner)(nil)
)

// runTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func runTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// StockTxRunner ejecuta los callbacks del libro de stock dentro de una
// transacción, con repos atados a la tx.
type StockTxRunner struct {
	pool *pgxpool.Pool
}

// NewStockTxRunner construye el runner con el pool.
func NewStockTxRunner(pool *pgxpool.Pool) *StockTxRunner {
	return &StockTxRunner{pool: pool}
}

func (r *StockTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	allocRepo repository.AllocationRepository,
) error) error {
	return runTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewStockRepository(tx), NewAllocationRepository(tx))
	})
}

// ChainTxRunner ejecuta los callbacks de la cadena asignación→distribución
// dentro de una transacción.
type ChainTxRunner struct {
	pool *pgxpool.Pool
}

// NewChainTxRunner construye el runner con el pool.
func NewChainTxRunner(pool *pgxpool.Pool) *ChainTxRunner {
	return &ChainTxRunner{pool: pool}
}

func (r *ChainTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	allocRepo repository.AllocationRepository,
	distRepo repository.DistributionRepository,
) error) error {
	return runTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewStockRepository(tx), NewAllocationRepository(tx), NewDistributionRepository(tx))
	})
}

// BudgetTxRunner ejecuta los callbacks del libro presupuestal dentro de una
// transacción.
type BudgetTxRunner struct {
	pool *pgxpool.Pool
}

// NewBudgetTxRunner construye el runner con el pool.
func NewBudgetTxRunner(pool *pgxpool.Pool) *BudgetTxRunner {
	return &BudgetTxRunner{pool: pool}
}

func (r *BudgetTxRunner) Run(ctx context.Context, fn func(budgetRepo repository.BudgetRepository) error) error {
	return runTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewBudgetRepository(tx))
	})
}
