package core

import "github.com/shopspring/decimal"

// TotalCommission sums commission across every installment of every sale,
// regardless of billed status or due date. Used for lifetime totals.
func TotalCommission(sales []Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		for _, inst := range s.Installments {
			total = total.Add(inst.Commission)
		}
	}
	return total
}

// CommissionForMonth sums commission over installments that are due in the
// given calendar month AND have been billed. An unbilled installment is
// excluded even when its due date matches: the result is commission
// confirmed for that payroll month, not merely scheduled.
//
// A sale with a missing or empty installment list contributes zero; stored
// data may be malformed and the aggregator is read-only over it.
func CommissionForMonth(sales []Sale, year, month int) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		for _, inst := range s.Installments {
			if !inst.Billed {
				continue
			}
			if inst.DueDate.Year() == year && int(inst.DueDate.Month()) == month {
				total = total.Add(inst.Commission)
			}
		}
	}
	return total
}
