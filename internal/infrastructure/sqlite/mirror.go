package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/javierdrios/Socorro-api/internal/application/syncer"
)

var _ syncer.Mirror = (*MirrorStore)(nil)

// MirrorStore mantiene la réplica local de las tablas de referencia. El
// contenido solo cambia vía Replace; las lecturas ven siempre un pull completo.
type MirrorStore struct {
	db *sqlx.DB
}

// NewMirror construye el espejo sobre la base local.
func NewMirror(db *sqlx.DB) *MirrorStore {
	return &MirrorStore{db: db}
}

// Replace sustituye el contenido completo del espejo en una transacción.
func (m *MirrorStore) Replace(ctx context.Context, snap *syncer.Snapshot) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mirror replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"mirror_categories", "mirror_goods", "mirror_shelters", "mirror_stocks"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	for _, c := range snap.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mirror_categories (id, name, description, active) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Description, c.Active,
		); err != nil {
			return fmt.Errorf("mirror category %d: %w", c.ID, err)
		}
	}
	for _, g := range snap.Goods {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mirror_goods (id, category_id, name, unit, unit_cost, active) VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, g.CategoryID, g.Name, g.Unit, g.UnitCost.String(), g.Active,
		); err != nil {
			return fmt.Errorf("mirror good %d: %w", g.ID, err)
		}
	}
	for _, s := range snap.Shelters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mirror_shelters (id, disaster_id, name, address, capacity, active) VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, s.DisasterID, s.Name, s.Address, s.Capacity, s.Active,
		); err != nil {
			return fmt.Errorf("mirror shelter %d: %w", s.ID, err)
		}
	}
	for _, st := range snap.Stocks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mirror_stocks (id, good_id, disaster_id, shelter_id, quantity, max_capacity, unit_cost, active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, st.GoodID, st.DisasterID, st.ShelterID,
			st.Quantity, st.MaxCapacity, st.UnitCost.String(), st.Active,
		); err != nil {
			return fmt.Errorf("mirror stock %d: %w", st.ID, err)
		}
	}

	pulledAt := snap.PulledAt
	if pulledAt.IsZero() {
		pulledAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO mirror_state (id, pulled_at) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET pulled_at = excluded.pulled_at`,
		pulledAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("mirror state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mirror replace: %w", err)
	}
	return nil
}

// LastPulledAt devuelve el instante del último pull exitoso, o cero si el
// espejo nunca se ha llenado.
func (m *MirrorStore) LastPulledAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := m.db.GetContext(ctx, &raw, `SELECT pulled_at FROM mirror_state WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("mirror state: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse pulled_at: %w", err)
	}
	return t, nil
}
