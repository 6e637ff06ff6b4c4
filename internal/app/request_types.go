package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"commission-tracker/internal/core"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks a request that failed field validation. Adapters map
// it to a client error; anything not wrapping it is a server fault.
var ErrInvalidInput = errors.New("invalid input")

// CreateSaleRequest carries a raw sale submission from an adapter. Numeric
// fields arrive as strings (HTML forms and lenient JSON clients send them
// that way) and are parsed and rejected here, before any engine code runs.
type CreateSaleRequest struct {
	ProductLine     string `json:"product_line"`
	Value           string `json:"value"`
	DiscountPercent string `json:"discount_percent"`
	PaymentTerm     string `json:"payment_term"`
	Buyer           string `json:"buyer"`
	Seller          string `json:"seller"`
}

// Parse validates the request and converts it into engine input. Payment
// term membership in the allowed set is checked later by the schedule
// builder; this only guards against malformed fields.
func (r CreateSaleRequest) Parse() (core.NewSaleInput, error) {
	var in core.NewSaleInput

	line := strings.TrimSpace(r.ProductLine)
	if line == "" {
		return in, fmt.Errorf("%w: product_line is required", ErrInvalidInput)
	}

	value, err := decimal.NewFromString(strings.TrimSpace(r.Value))
	if err != nil {
		return in, fmt.Errorf("%w: invalid value %q", ErrInvalidInput, r.Value)
	}
	if value.IsNegative() {
		return in, fmt.Errorf("%w: value must not be negative, got %s", ErrInvalidInput, value)
	}

	discount, err := decimal.NewFromString(strings.TrimSpace(r.DiscountPercent))
	if err != nil {
		return in, fmt.Errorf("%w: invalid discount_percent %q", ErrInvalidInput, r.DiscountPercent)
	}

	term, err := strconv.Atoi(strings.TrimSpace(r.PaymentTerm))
	if err != nil {
		return in, fmt.Errorf("%w: invalid payment_term %q", ErrInvalidInput, r.PaymentTerm)
	}

	buyer := strings.TrimSpace(r.Buyer)
	if buyer == "" {
		return in, fmt.Errorf("%w: buyer is required", ErrInvalidInput)
	}

	in = core.NewSaleInput{
		ProductLine:     core.ProductLine(line),
		Value:           value,
		DiscountPercent: discount,
		PaymentTerm:     term,
		Buyer:           buyer,
		Seller:          strings.TrimSpace(r.Seller),
	}
	return in, nil
}
