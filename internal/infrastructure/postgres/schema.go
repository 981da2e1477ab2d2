package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas si no existen. Es idempotente y se ejecuta en el arranque.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		identifier    TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'active',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id             UUID PRIMARY KEY,
		owner_id       UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		sku            TEXT NOT NULL,
		name           TEXT NOT NULL DEFAULT '',
		lead_time_days INTEGER NOT NULL CHECK (lead_time_days >= 1),
		z_value        NUMERIC(6,3) NOT NULL,
		fba_stock      INTEGER NOT NULL DEFAULT 0 CHECK (fba_stock >= 0),
		inbound_stock  INTEGER NOT NULL DEFAULT 0 CHECK (inbound_stock >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (owner_id, sku)
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_sales (
		id         UUID PRIMARY KEY,
		owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		sku        TEXT NOT NULL,
		year       INTEGER NOT NULL,
		month      INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		units_sold INTEGER NOT NULL CHECK (units_sold >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (owner_id, sku, year, month)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_owner_updated ON products (owner_id, updated_at DESC)`,
}

// EnsureSchema aplica schemaStatements sobre la base de datos.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
