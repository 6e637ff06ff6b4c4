package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidPaymentTerm is returned when a payment term is not in the
// allowed set. The schedule builder refuses to guess at a default.
var ErrInvalidPaymentTerm = errors.New("invalid payment term")

const daysPerInstallment = 30

// singlePaymentTerms settle the full value in one installment on the due
// date, regardless of length. 56 days is a single payment even though it
// spans more than a month.
var singlePaymentTerms = map[int]bool{0: true, 7: true, 14: true, 28: true, 56: true}

// monthlyTerms split the value into term/30 installments due 30 days apart.
var monthlyTerms = map[int]bool{30: true, 60: true, 90: true, 120: true}

// BuildSchedule derives the full installment schedule for a sale: the
// commission rate is resolved once from the product line and discount, and
// applied uniformly to every installment. origin is the schedule's date
// anchor, supplied by the caller; this function never reads the clock.
//
// Installment amounts are an equal split rounded to cents, with the final
// installment absorbing the rounding remainder so the schedule always sums
// to the sale value exactly.
func BuildSchedule(value decimal.Decimal, paymentTerm int, line ProductLine, discountPercent decimal.Decimal, origin time.Time) ([]Installment, error) {
	rate := ResolveRate(line, discountPercent)

	switch {
	case singlePaymentTerms[paymentTerm]:
		return []Installment{{
			SequenceValue: paymentTerm,
			Amount:        value,
			Commission:    value.Mul(rate).Round(2),
			DueDate:       origin.AddDate(0, 0, paymentTerm),
		}}, nil

	case monthlyTerms[paymentTerm]:
		count := paymentTerm / daysPerInstallment
		share := value.DivRound(decimal.NewFromInt(int64(count)), 2)

		installments := make([]Installment, 0, count)
		allocated := decimal.Zero
		for i := 1; i <= count; i++ {
			amount := share
			if i == count {
				amount = value.Sub(allocated)
			}
			allocated = allocated.Add(amount)

			installments = append(installments, Installment{
				SequenceValue: daysPerInstallment * i,
				Amount:        amount,
				Commission:    amount.Mul(rate).Round(2),
				DueDate:       origin.AddDate(0, 0, daysPerInstallment*i),
			})
		}
		return installments, nil

	default:
		return nil, fmt.Errorf("%w: %d days (allowed: 0, 7, 14, 28, 30, 56, 60, 90, 120)", ErrInvalidPaymentTerm, paymentTerm)
	}
}
