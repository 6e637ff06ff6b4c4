package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductLine categorizes what was sold and selects the commission rate table.
type ProductLine string

const (
	LineAdditive ProductLine = "additive"
	LineAqua     ProductLine = "aqua"
	LinePoultry  ProductLine = "poultry"
	LinePet      ProductLine = "pet"
	LineRuminant ProductLine = "ruminant"
	LineSwine    ProductLine = "swine"
	LineResale   ProductLine = "resale"
	LineFeed     ProductLine = "feed"
)

// Installment is one scheduled partial payment of a sale's value.
// SequenceValue is the month marker used for grouping: 0 for a cash sale,
// the term itself for sub-30-day single payments, 30*k for the k-th monthly
// installment. Everything except Billed is fixed at schedule-build time.
type Installment struct {
	SequenceValue int             `json:"sequence_value"`
	Amount        decimal.Decimal `json:"amount"`
	Commission    decimal.Decimal `json:"commission"`
	DueDate       time.Time       `json:"due_date"`
	Billed        bool            `json:"billed"`
}

// Sale is a sales transaction with its installment schedule. The schedule is
// computed once when the sale is created and never regenerated; toggling an
// installment's Billed flag is the only mutation allowed afterwards.
type Sale struct {
	ID              int             `json:"id"`
	ProductLine     ProductLine     `json:"product_line"`
	Value           decimal.Decimal `json:"value"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	PaymentTerm     int             `json:"payment_term"`
	Buyer           string          `json:"buyer"`
	Seller          string          `json:"seller"`
	CreatedAt       time.Time       `json:"created_at"`
	Installments    []Installment   `json:"installments"`
}
