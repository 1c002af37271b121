package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceIssued  InvoiceStatus = "issued"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// InvoiceLine is one billed item on an invoice. Discount and tax rate
// are percentages applied in that order: discount off the base, tax on
// the discounted amount.
type InvoiceLine struct {
	ID              string
	ItemID          string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal
	WarehouseID     string
}

// Invoice is a customer invoice. Totals are computed by the invoice
// service and stored denormalized for listing.
type Invoice struct {
	ID            string
	Number        string // "INV-YYYY-NNNN", assigned on issue
	Date          time.Time
	DueDate       time.Time
	CustomerID    string
	Lines         []InvoiceLine
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	Status        InvoiceStatus
}
