package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
)

// Querier es el subconjunto común de *pgxpool.Pool y pgx.Tx que usan los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// monthKeys codifica los meses como year*100+month para filtrarlos con = ANY($n).
func monthKeys(months []inventory.YearMonth) []int32 {
	keys := make([]int32, 0, len(months))
	for _, ym := range months {
		keys = append(keys, int32(ym.Year*100+ym.Month))
	}
	return keys
}
