package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
)

var hundred = decimal.NewFromInt(100)

// LineTotals breaks down one invoice line's arithmetic: discount off
// the base, then tax on the discounted amount.
type LineTotals struct {
	Base           decimal.Decimal
	DiscountAmount decimal.Decimal
	Taxable        decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

// ComputeLine computes one line's totals.
func ComputeLine(line model.InvoiceLine) LineTotals {
	base := line.Quantity.Mul(line.UnitPrice)
	discount := base.Mul(line.DiscountPercent).Div(hundred)
	taxable := base.Sub(discount)
	tax := taxable.Mul(line.TaxRatePercent).Div(hundred)
	return LineTotals{
		Base:           base,
		DiscountAmount: discount,
		Taxable:        taxable,
		TaxAmount:      tax,
		LineTotal:      taxable.Add(tax),
	}
}

// Totals aggregates line totals across an invoice.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
}

// Compute aggregates totals over an invoice's lines. The subtotal is
// the sum of discounted (taxable) amounts. Lines without a positive
// quantity contribute nothing.
func Compute(lines []model.InvoiceLine) Totals {
	var t Totals
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			continue
		}
		lt := ComputeLine(line)
		t.Subtotal = t.Subtotal.Add(lt.Taxable)
		t.DiscountTotal = t.DiscountTotal.Add(lt.DiscountAmount)
		t.TaxTotal = t.TaxTotal.Add(lt.TaxAmount)
	}
	t.Total = t.Subtotal.Add(t.TaxTotal)
	return t
}
