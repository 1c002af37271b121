package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openbooks-dev/openbooks/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLine(t *testing.T) {
	// 2 x 50 with 10% discount and 18% tax.
	lt := ComputeLine(model.InvoiceLine{
		Quantity:        dec("2"),
		UnitPrice:       dec("50"),
		DiscountPercent: dec("10"),
		TaxRatePercent:  dec("18"),
	})
	assert.True(t, lt.Base.Equal(dec("100")), "base %s", lt.Base)
	assert.True(t, lt.DiscountAmount.Equal(dec("10")), "discount %s", lt.DiscountAmount)
	assert.True(t, lt.Taxable.Equal(dec("90")), "taxable %s", lt.Taxable)
	assert.True(t, lt.TaxAmount.Equal(dec("16.2")), "tax %s", lt.TaxAmount)
	assert.True(t, lt.LineTotal.Equal(dec("106.2")), "total %s", lt.LineTotal)
}

func TestComputeLine_NoDiscountNoTax(t *testing.T) {
	lt := ComputeLine(model.InvoiceLine{
		Quantity:  dec("3"),
		UnitPrice: dec("12.50"),
	})
	assert.True(t, lt.Base.Equal(dec("37.50")))
	assert.True(t, lt.DiscountAmount.IsZero())
	assert.True(t, lt.LineTotal.Equal(dec("37.50")))
}

func TestCompute_AggregatesLines(t *testing.T) {
	line := model.InvoiceLine{
		Quantity:        dec("2"),
		UnitPrice:       dec("50"),
		DiscountPercent: dec("10"),
		TaxRatePercent:  dec("18"),
	}

	totals := Compute([]model.InvoiceLine{line, line})
	assert.True(t, totals.Subtotal.Equal(dec("180")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountTotal.Equal(dec("20")))
	assert.True(t, totals.TaxTotal.Equal(dec("32.4")))
	assert.True(t, totals.Total.Equal(dec("212.4")))
}

func TestCompute_ZeroQuantityExcluded(t *testing.T) {
	lines := []model.InvoiceLine{
		{Quantity: dec("2"), UnitPrice: dec("50")},
		{Quantity: decimal.Zero, UnitPrice: dec("999")},
	}
	totals := Compute(lines)
	assert.True(t, totals.Total.Equal(dec("100")), "zero-quantity line contributes nothing")
}

func TestCompute_Empty(t *testing.T) {
	totals := Compute(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}
