// Package rediscache implementa cachés de lectura sobre Redis. Todas las
// operaciones son best-effort: un Redis caído degrada a recalcular, nunca a
// fallar la petición.
package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/javierdrios/Socorro-api/internal/application/budget"
	"github.com/javierdrios/Socorro-api/pkg/logger"
)

var _ budget.BalanceCache = (*BalanceCache)(nil)

const balanceTTL = 10 * time.Minute

// BalanceCache cachea el saldo disponible por presupuesto. La invalidación es
// explícita (cada partida registrada invalida su clave); el TTL solo acota el
// daño de una invalidación perdida.
type BalanceCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewBalanceCache construye la caché sobre un cliente ya conectado.
func NewBalanceCache(client *redis.Client, log *logger.Logger) *BalanceCache {
	return &BalanceCache{client: client, log: log}
}

func balanceKey(budgetID int64) string {
	return fmt.Sprintf("BudgetBalance:%d", budgetID)
}

// Get devuelve el saldo cacheado y si hubo acierto.
func (c *BalanceCache) Get(ctx context.Context, budgetID int64) (decimal.Decimal, bool) {
	raw, err := c.client.Get(ctx, balanceKey(budgetID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Int64("budget_id", budgetID).Msg("caché de saldo ilegible")
		}
		return decimal.Zero, false
	}
	available, err := decimal.NewFromString(raw)
	if err != nil {
		c.log.Warn().Err(err).Str("raw", raw).Msg("saldo cacheado corrupto, se descarta")
		c.Invalidate(ctx, budgetID)
		return decimal.Zero, false
	}
	return available, true
}

// Set guarda el saldo calculado.
func (c *BalanceCache) Set(ctx context.Context, budgetID int64, available decimal.Decimal) {
	if err := c.client.Set(ctx, balanceKey(budgetID), available.String(), balanceTTL).Err(); err != nil {
		c.log.Warn().Err(err).Int64("budget_id", budgetID).Msg("no se pudo cachear el saldo")
	}
}

// Invalidate elimina la clave del presupuesto afectado.
func (c *BalanceCache) Invalidate(ctx context.Context, budgetID int64) {
	if err := c.client.Del(ctx, balanceKey(budgetID)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("budget_id", budgetID).Msg("no se pudo invalidar el saldo")
	}
}
