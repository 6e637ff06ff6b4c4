package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate runs all table creation statements. Safe to call multiple times
// due to IF NOT EXISTS clauses.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		product_line TEXT NOT NULL,
		value NUMERIC(12,2) NOT NULL CHECK (value >= 0),
		discount_percent NUMERIC(6,2) NOT NULL,
		payment_term INT NOT NULL,
		buyer TEXT NOT NULL,
		seller TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// Installments are owned by their sale: deleting a sale deletes its
	// schedule. sequence_value is the month marker and is unique per sale.
	`CREATE TABLE IF NOT EXISTS installments (
		id SERIAL PRIMARY KEY,
		sale_id INT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		sequence_value INT NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		commission NUMERIC(12,2) NOT NULL,
		due_date DATE NOT NULL,
		billed BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (sale_id, sequence_value)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sales_seller ON sales(seller)`,
	`CREATE INDEX IF NOT EXISTS idx_installments_sale ON installments(sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_installments_due ON installments(due_date)`,
}
