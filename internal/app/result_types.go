package app

import (
	"commission-tracker/internal/core"

	"github.com/shopspring/decimal"
)

// SalesMetadata summarizes a sale listing.
type SalesMetadata struct {
	Count           int             `json:"count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// SaleListResult is the response shape for sale listings.
type SaleListResult struct {
	Sales    []core.Sale   `json:"sales"`
	Metadata SalesMetadata `json:"metadata"`
}

// SaleResult wraps a single sale.
type SaleResult struct {
	Sale *core.Sale `json:"sale"`
}

// TotalCommissionResult is the lifetime commission total across all stored
// sales, billed or not.
type TotalCommissionResult struct {
	Total decimal.Decimal `json:"total"`
}

// MonthlyCommissionResult is the billed commission due in one calendar month.
type MonthlyCommissionResult struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}
