package app

import "context"

// ApplicationService is the single interface UI adapters call. It decouples
// presentation from business logic; implementations contain no display
// logic of any kind.
type ApplicationService interface {
	// ListSales returns stored sales with listing metadata, optionally
	// filtered by seller (empty string means no filter).
	ListSales(ctx context.Context, seller string) (*SaleListResult, error)

	// GetSale returns a single sale with its schedule.
	GetSale(ctx context.Context, id int) (*SaleResult, error)

	// CreateSale validates the submission, builds the installment schedule
	// anchored at the current instant, and persists the sale.
	CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResult, error)

	// DeleteSale removes a sale and its installments.
	DeleteSale(ctx context.Context, id int) error

	// ToggleInstallmentBilled flips the billed flag on one installment,
	// identified by its sequence value, and returns the updated sale.
	ToggleInstallmentBilled(ctx context.Context, saleID, sequenceValue int) (*SaleResult, error)

	// TotalCommission returns the lifetime commission across all stored
	// sales, regardless of billed status or due date.
	TotalCommission(ctx context.Context, seller string) (*TotalCommissionResult, error)

	// CommissionForMonth returns the billed commission due in the given
	// calendar month.
	CommissionForMonth(ctx context.Context, seller string, year, month int) (*MonthlyCommissionResult, error)
}
