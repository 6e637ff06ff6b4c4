package app

import (
	"context"
	"fmt"
	"time"

	"commission-tracker/internal/core"
)

type appService struct {
	sales core.SaleService
	now   func() time.Time
}

// NewAppService wires the application facade over the sale service. now is
// the clock used as the schedule origin for new sales; pass nil for
// time.Now. Schedule generation itself never reads a clock, so tests can
// pin the origin by injecting a fixed function here.
func NewAppService(sales core.SaleService, now func() time.Time) ApplicationService {
	if now == nil {
		now = time.Now
	}
	return &appService{sales: sales, now: now}
}

func (s *appService) ListSales(ctx context.Context, seller string) (*SaleListResult, error) {
	sales, err := s.sales.ListSales(ctx, seller)
	if err != nil {
		return nil, err
	}

	meta := SalesMetadata{Count: len(sales), TotalCommission: core.TotalCommission(sales)}
	for _, sale := range sales {
		meta.TotalValue = meta.TotalValue.Add(sale.Value)
	}

	if sales == nil {
		sales = []core.Sale{}
	}
	return &SaleListResult{Sales: sales, Metadata: meta}, nil
}

func (s *appService) GetSale(ctx context.Context, id int) (*SaleResult, error) {
	sale, err := s.sales.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SaleResult{Sale: sale}, nil
}

func (s *appService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResult, error) {
	in, err := req.Parse()
	if err != nil {
		return nil, err
	}

	sale, err := s.sales.CreateSale(ctx, in, s.now())
	if err != nil {
		return nil, err
	}
	return &SaleResult{Sale: sale}, nil
}

func (s *appService) DeleteSale(ctx context.Context, id int) error {
	return s.sales.DeleteSale(ctx, id)
}

func (s *appService) ToggleInstallmentBilled(ctx context.Context, saleID, sequenceValue int) (*SaleResult, error) {
	sale, err := s.sales.ToggleInstallmentBilled(ctx, saleID, sequenceValue)
	if err != nil {
		return nil, err
	}
	return &SaleResult{Sale: sale}, nil
}

func (s *appService) TotalCommission(ctx context.Context, seller string) (*TotalCommissionResult, error) {
	sales, err := s.sales.ListSales(ctx, seller)
	if err != nil {
		return nil, err
	}
	return &TotalCommissionResult{Total: core.TotalCommission(sales)}, nil
}

func (s *appService) CommissionForMonth(ctx context.Context, seller string, year, month int) (*MonthlyCommissionResult, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidInput, month)
	}
	if year < 1 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", ErrInvalidInput, year)
	}

	sales, err := s.sales.ListSales(ctx, seller)
	if err != nil {
		return nil, err
	}
	return &MonthlyCommissionResult{
		Year:  year,
		Month: month,
		Total: core.CommissionForMonth(sales, year, month),
	}, nil
}
