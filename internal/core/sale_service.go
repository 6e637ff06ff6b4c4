package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrSaleNotFound is returned when no sale exists with the given ID.
var ErrSaleNotFound = errors.New("sale not found")

// ErrInstallmentNotFound is returned when a sale has no installment with the
// given sequence value.
var ErrInstallmentNotFound = errors.New("installment not found")

// NewSaleInput carries the validated fields of a sale submission. Callers
// never supply installments; the schedule is always derived server-side.
type NewSaleInput struct {
	ProductLine     ProductLine
	Value           decimal.Decimal
	DiscountPercent decimal.Decimal
	PaymentTerm     int
	Buyer           string
	Seller          string
}

// SaleService owns the sales-record store: persisted sales plus the
// installment schedules computed once at creation time.
type SaleService interface {
	// CreateSale builds the installment schedule anchored at origin and
	// persists the sale and its schedule atomically. Nothing is stored when
	// the schedule cannot be built.
	CreateSale(ctx context.Context, in NewSaleInput, origin time.Time) (*Sale, error)

	// GetSale returns one sale with its full schedule.
	GetSale(ctx context.Context, id int) (*Sale, error)

	// ListSales returns all stored sales, newest first, optionally filtered
	// by seller. Pass an empty seller for no filter.
	ListSales(ctx context.Context, seller string) ([]Sale, error)

	// DeleteSale removes a sale and, through ownership, its installments.
	DeleteSale(ctx context.Context, id int) error

	// ToggleInstallmentBilled flips the billed flag of exactly one
	// installment, identified by its sequence value, and returns the
	// updated sale.
	ToggleInstallmentBilled(ctx context.Context, saleID, sequenceValue int) (*Sale, error)
}

type saleService struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewSaleService constructs a SaleService backed by the given pool.
func NewSaleService(pool *pgxpool.Pool, logger *zap.Logger) SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &saleService{pool: pool, logger: logger}
}

func (s *saleService) CreateSale(ctx context.Context, in NewSaleInput, origin time.Time) (*Sale, error) {
	installments, err := BuildSchedule(in.Value, in.PaymentTerm, in.ProductLine, in.DiscountPercent, origin)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var saleID int
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO sales (product_line, value, discount_percent, payment_term, buyer, seller, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, in.ProductLine, in.Value, in.DiscountPercent, in.PaymentTerm, in.Buyer, in.Seller, origin).Scan(&saleID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	for _, inst := range installments {
		_, err = tx.Exec(ctx, `
			INSERT INTO installments (sale_id, sequence_value, amount, commission, due_date, billed)
			VALUES ($1, $2, $3, $4, $5, false)
		`, saleID, inst.SequenceValue, inst.Amount, inst.Commission, inst.DueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to insert installment %d: %w", inst.SequenceValue, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sale creation: %w", err)
	}

	s.logger.Info("sale created",
		zap.Int("sale_id", saleID),
		zap.String("product_line", string(in.ProductLine)),
		zap.String("value", in.Value.String()),
		zap.Int("payment_term", in.PaymentTerm),
		zap.Int("installments", len(installments)),
	)

	return s.GetSale(ctx, saleID)
}

func (s *saleService) GetSale(ctx context.Context, id int) (*Sale, error) {
	var sale Sale
	err := s.pool.QueryRow(ctx, `
		SELECT id, product_line, value, discount_percent, payment_term, buyer, seller, created_at
		FROM sales
		WHERE id = $1
	`, id).Scan(
		&sale.ID, &sale.ProductLine, &sale.Value, &sale.DiscountPercent,
		&sale.PaymentTerm, &sale.Buyer, &sale.Seller, &sale.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrSaleNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch sale %d: %w", id, err)
	}

	byID, err := s.fetchInstallments(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	sale.Installments = byID[id]
	return &sale, nil
}

func (s *saleService) ListSales(ctx context.Context, seller string) ([]Sale, error) {
	query := `
		SELECT id, product_line, value, discount_percent, payment_term, buyer, seller, created_at
		FROM sales
	`
	args := []any{}
	if seller != "" {
		query += " WHERE seller = $1"
		args = append(args, seller)
	}
	query += " ORDER BY id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []Sale
	var ids []int
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(
			&sale.ID, &sale.ProductLine, &sale.Value, &sale.DiscountPercent,
			&sale.PaymentTerm, &sale.Buyer, &sale.Seller, &sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales row iteration error: %w", err)
	}

	if len(ids) == 0 {
		return sales, nil
	}

	byID, err := s.fetchInstallments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Installments = byID[sales[i].ID]
		if len(sales[i].Installments) == 0 {
			// Stored data may be malformed; the sale still lists but
			// contributes nothing to commission aggregates.
			s.logger.Warn("sale has no installment schedule", zap.Int("sale_id", sales[i].ID))
		}
	}
	return sales, nil
}

func (s *saleService) DeleteSale(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete sale %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", ErrSaleNotFound, id)
	}
	s.logger.Info("sale deleted", zap.Int("sale_id", id))
	return nil
}

func (s *saleService) ToggleInstallmentBilled(ctx context.Context, saleID, sequenceValue int) (*Sale, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the parent sale so concurrent toggles against the same schedule
	// serialize; the store's current version is what gets flipped.
	var lockedID int
	err = tx.QueryRow(ctx, "SELECT id FROM sales WHERE id = $1 FOR UPDATE", saleID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrSaleNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to lock sale %d: %w", saleID, err)
	}

	var billed bool
	err = tx.QueryRow(ctx, `
		UPDATE installments
		SET billed = NOT billed
		WHERE sale_id = $1 AND sequence_value = $2
		RETURNING billed
	`, saleID, sequenceValue).Scan(&billed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %d, sequence %d", ErrInstallmentNotFound, saleID, sequenceValue)
		}
		return nil, fmt.Errorf("failed to toggle installment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit billed toggle: %w", err)
	}

	s.logger.Info("installment billed flag toggled",
		zap.Int("sale_id", saleID),
		zap.Int("sequence_value", sequenceValue),
		zap.Bool("billed", billed),
	)

	return s.GetSale(ctx, saleID)
}

// fetchInstallments loads the schedules for the given sale IDs, keyed by
// sale ID and ordered by sequence value within each sale.
func (s *saleService) fetchInstallments(ctx context.Context, saleIDs []int) (map[int][]Installment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sale_id, sequence_value, amount, commission, due_date, billed
		FROM installments
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, sequence_value
	`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	byID := make(map[int][]Installment, len(saleIDs))
	for rows.Next() {
		var saleID int
		var inst Installment
		if err := rows.Scan(
			&saleID, &inst.SequenceValue, &inst.Amount, &inst.Commission,
			&inst.DueDate, &inst.Billed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		byID[saleID] = append(byID[saleID], inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("installments row iteration error: %w", err)
	}
	return byID, nil
}
