package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/replenishment-planner/internal/application/planning"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

var _ planning.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción de lectura/escritura, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.MonthlySalesRepository,
) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunReadOnly ejecuta fn en una transacción REPEATABLE READ de solo lectura: todas las lecturas
// ven la misma instantánea, así un cálculo nunca mezcla ventas viejas y nuevas.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.MonthlySalesRepository,
) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(
	products repository.ProductRepository,
	sales repository.MonthlySalesRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewMonthlySalesRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
