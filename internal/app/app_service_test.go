package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"commission-tracker/internal/core"

	"github.com/shopspring/decimal"
)

// stubSaleStore is an in-memory SaleService for facade tests.
type stubSaleStore struct {
	sales  map[int]*core.Sale
	nextID int
}

func newStubSaleStore() *stubSaleStore {
	return &stubSaleStore{sales: map[int]*core.Sale{}, nextID: 1}
}

func (s *stubSaleStore) CreateSale(_ context.Context, in core.NewSaleInput, origin time.Time) (*core.Sale, error) {
	installments, err := core.BuildSchedule(in.Value, in.PaymentTerm, in.ProductLine, in.DiscountPercent, origin)
	if err != nil {
		return nil, err
	}
	sale := &core.Sale{
		ID:              s.nextID,
		ProductLine:     in.ProductLine,
		Value:           in.Value,
		DiscountPercent: in.DiscountPercent,
		PaymentTerm:     in.PaymentTerm,
		Buyer:           in.Buyer,
		Seller:          in.Seller,
		CreatedAt:       origin,
		Installments:    installments,
	}
	s.sales[s.nextID] = sale
	s.nextID++
	return sale, nil
}

func (s *stubSaleStore) GetSale(_ context.Context, id int) (*core.Sale, error) {
	sale, ok := s.sales[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", core.ErrSaleNotFound, id)
	}
	return sale, nil
}

func (s *stubSaleStore) ListSales(_ context.Context, seller string) ([]core.Sale, error) {
	var out []core.Sale
	for _, sale := range s.sales {
		if seller == "" || sale.Seller == seller {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (s *stubSaleStore) DeleteSale(_ context.Context, id int) error {
	if _, ok := s.sales[id]; !ok {
		return fmt.Errorf("%w: id %d", core.ErrSaleNotFound, id)
	}
	delete(s.sales, id)
	return nil
}

func (s *stubSaleStore) ToggleInstallmentBilled(_ context.Context, saleID, sequenceValue int) (*core.Sale, error) {
	sale, ok := s.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", core.ErrSaleNotFound, saleID)
	}
	for i := range sale.Installments {
		if sale.Installments[i].SequenceValue == sequenceValue {
			sale.Installments[i].Billed = !sale.Installments[i].Billed
			return sale, nil
		}
	}
	return nil, fmt.Errorf("%w: sale %d, sequence %d", core.ErrInstallmentNotFound, saleID, sequenceValue)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAppService_CreateSaleUsesInjectedClock(t *testing.T) {
	store := newStubSaleStore()
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewAppService(store, fixedClock(origin))

	result, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		ProductLine:     "pet",
		Value:           "3000",
		DiscountPercent: "5",
		PaymentTerm:     "60",
		Buyer:           "b",
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	wantFirstDue := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	if !result.Sale.Installments[0].DueDate.Equal(wantFirstDue) {
		t.Errorf("first due = %s, want %s", result.Sale.Installments[0].DueDate, wantFirstDue)
	}
}

func TestAppService_ListSalesMetadata(t *testing.T) {
	store := newStubSaleStore()
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewAppService(store, fixedClock(origin))
	ctx := context.Background()

	// 3000 pet @5% over 60 days: commission 210. 1000 feed cash: commission 30.
	for _, req := range []CreateSaleRequest{
		{ProductLine: "pet", Value: "3000", DiscountPercent: "5", PaymentTerm: "60", Buyer: "b"},
		{ProductLine: "feed", Value: "1000", DiscountPercent: "0", PaymentTerm: "0", Buyer: "b"},
	} {
		if _, err := svc.CreateSale(ctx, req); err != nil {
			t.Fatalf("CreateSale failed: %v", err)
		}
	}

	result, err := svc.ListSales(ctx, "")
	if err != nil {
		t.Fatalf("ListSales failed: %v", err)
	}
	if result.Metadata.Count != 2 {
		t.Errorf("count = %d, want 2", result.Metadata.Count)
	}
	if !result.Metadata.TotalValue.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("total value = %s, want 4000", result.Metadata.TotalValue)
	}
	if !result.Metadata.TotalCommission.Equal(decimal.NewFromInt(240)) {
		t.Errorf("total commission = %s, want 240", result.Metadata.TotalCommission)
	}
}

func TestAppService_CommissionForMonth(t *testing.T) {
	store := newStubSaleStore()
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewAppService(store, fixedClock(origin))
	ctx := context.Background()

	created, err := svc.CreateSale(ctx, CreateSaleRequest{
		ProductLine: "pet", Value: "3000", DiscountPercent: "5", PaymentTerm: "60", Buyer: "b",
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	// Unbilled: zero even for the matching month.
	res, err := svc.CommissionForMonth(ctx, "", 2024, 1)
	if err != nil {
		t.Fatalf("CommissionForMonth failed: %v", err)
	}
	if !res.Total.IsZero() {
		t.Errorf("unbilled total = %s, want 0", res.Total)
	}

	if _, err := svc.ToggleInstallmentBilled(ctx, created.Sale.ID, 30); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	res, err = svc.CommissionForMonth(ctx, "", 2024, 1)
	if err != nil {
		t.Fatalf("CommissionForMonth failed: %v", err)
	}
	if !res.Total.Equal(decimal.NewFromInt(105)) {
		t.Errorf("billed january total = %s, want 105", res.Total)
	}
}

func TestAppService_CommissionForMonth_RejectsBadMonth(t *testing.T) {
	svc := NewAppService(newStubSaleStore(), nil)
	for _, month := range []int{0, 13, -1} {
		_, err := svc.CommissionForMonth(context.Background(), "", 2024, month)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("month %d: expected ErrInvalidInput, got %v", month, err)
		}
	}
	if _, err := svc.CommissionForMonth(context.Background(), "", 0, 6); !errors.Is(err, ErrInvalidInput) {
		t.Error("year 0: expected ErrInvalidInput")
	}
}
