package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/javierdrios/Socorro-api/internal/domain"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx: los adaptadores aceptan cualquiera
// de los dos, de modo que el mismo repositorio sirve dentro y fuera de una
// transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translateErr mapea errores de PostgreSQL a los centinelas del dominio:
// 23505 (unique_violation) -> ErrDuplicate, 23503 (foreign_key_violation) ->
// ErrConflict. El resto pasa sin tocar.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrDuplicate
		case "23503":
			return domain.ErrConflict
		}
	}
	return err
}
