package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
)

const (
	invNumFields   = 10
	invDateFormat  = "2006-01-02"
	invColID       = 0
	invColNumber   = 1
	invColDate     = 2
	invColDueDate  = 3
	invColCustomer = 4
	invColSubtotal = 5
	invColDiscount = 6
	invColTax      = 7
	invColTotal    = 8
	invColStatus   = 9
)

var invHeader = []string{"invoice_id", "number", "date", "due_date", "customer_id", "subtotal", "discount_total", "tax_total", "total", "status"}

const (
	ilNumFields  = 9
	ilColID      = 0
	ilColInvID   = 1
	ilColItemID  = 2
	ilColDesc    = 3
	ilColQty     = 4
	ilColPrice   = 5
	ilColDisc    = 6
	ilColTaxRate = 7
	ilColWhID    = 8
)

var ilHeader = []string{"line_id", "invoice_id", "item_id", "description", "quantity", "unit_price", "discount_percent", "tax_rate_percent", "warehouse_id"}

// ReadInvoices reads invoices.csv and invoice-lines.csv, reattaching
// lines to their invoices in file order.
func ReadInvoices(headers, lines io.Reader) ([]model.Invoice, error) {
	hr := csv.NewReader(headers)
	hr.FieldsPerRecord = invNumFields
	headerRecords, err := hr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading invoices CSV: %w", err)
	}

	var invoices []model.Invoice
	byID := make(map[string]int)
	if len(headerRecords) > 0 {
		for i, rec := range headerRecords[1:] {
			inv, err := UnmarshalInvoice(rec)
			if err != nil {
				return nil, fmt.Errorf("invoices row %d: %w", i+2, err)
			}
			byID[inv.ID] = len(invoices)
			invoices = append(invoices, inv)
		}
	}

	lr := csv.NewReader(lines)
	lr.FieldsPerRecord = ilNumFields
	lineRecords, err := lr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading invoice lines CSV: %w", err)
	}
	if len(lineRecords) > 0 {
		for i, rec := range lineRecords[1:] {
			invID, line, err := UnmarshalInvoiceLine(rec)
			if err != nil {
				return nil, fmt.Errorf("invoice lines row %d: %w", i+2, err)
			}
			idx, ok := byID[invID]
			if !ok {
				return nil, fmt.Errorf("invoice lines row %d: unknown invoice %q", i+2, invID)
			}
			invoices[idx].Lines = append(invoices[idx].Lines, line)
		}
	}

	return invoices, nil
}

// WriteInvoices writes invoices.csv and invoice-lines.csv.
func WriteInvoices(headers, lines io.Writer, invoices []model.Invoice) error {
	hw := csv.NewWriter(headers)
	lw := csv.NewWriter(lines)

	if err := hw.Write(invHeader); err != nil {
		return fmt.Errorf("writing invoices header: %w", err)
	}
	if err := lw.Write(ilHeader); err != nil {
		return fmt.Errorf("writing invoice lines header: %w", err)
	}

	for _, inv := range invoices {
		if err := hw.Write(MarshalInvoice(inv)); err != nil {
			return fmt.Errorf("writing invoice %s: %w", inv.ID, err)
		}
		for _, line := range inv.Lines {
			if err := lw.Write(MarshalInvoiceLine(inv.ID, line)); err != nil {
				return fmt.Errorf("writing invoice %s line %s: %w", inv.ID, line.ID, err)
			}
		}
	}

	hw.Flush()
	lw.Flush()
	if err := hw.Error(); err != nil {
		return err
	}
	return lw.Error()
}

// MarshalInvoice converts an Invoice header to a CSV row.
func MarshalInvoice(inv model.Invoice) []string {
	row := make([]string, invNumFields)
	row[invColID] = inv.ID
	row[invColNumber] = inv.Number
	row[invColDate] = inv.Date.Format(invDateFormat)
	if !inv.DueDate.IsZero() {
		row[invColDueDate] = inv.DueDate.Format(invDateFormat)
	}
	row[invColCustomer] = inv.CustomerID
	row[invColSubtotal] = inv.Subtotal.StringFixed(2)
	row[invColDiscount] = inv.DiscountTotal.StringFixed(2)
	row[invColTax] = inv.TaxTotal.StringFixed(2)
	row[invColTotal] = inv.Total.StringFixed(2)
	row[invColStatus] = string(inv.Status)
	return row
}

// UnmarshalInvoice converts a CSV row to an Invoice (without lines).
func UnmarshalInvoice(record []string) (model.Invoice, error) {
	if len(record) != invNumFields {
		return model.Invoice{}, fmt.Errorf("expected %d fields, got %d", invNumFields, len(record))
	}

	date, err := time.Parse(invDateFormat, record[invColDate])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("parsing date %q: %w", record[invColDate], err)
	}

	var dueDate time.Time
	if record[invColDueDate] != "" {
		dueDate, err = time.Parse(invDateFormat, record[invColDueDate])
		if err != nil {
			return model.Invoice{}, fmt.Errorf("parsing due_date %q: %w", record[invColDueDate], err)
		}
	}

	amounts := make([]decimal.Decimal, 4)
	for i, col := range []int{invColSubtotal, invColDiscount, invColTax, invColTotal} {
		amounts[i], err = decimal.NewFromString(record[col])
		if err != nil {
			return model.Invoice{}, fmt.Errorf("parsing amount %q: %w", record[col], err)
		}
	}

	return model.Invoice{
		ID:            record[invColID],
		Number:        record[invColNumber],
		Date:          date,
		DueDate:       dueDate,
		CustomerID:    record[invColCustomer],
		Subtotal:      amounts[0],
		DiscountTotal: amounts[1],
		TaxTotal:      amounts[2],
		Total:         amounts[3],
		Status:        model.InvoiceStatus(record[invColStatus]),
	}, nil
}

// MarshalInvoiceLine converts an InvoiceLine to a CSV row.
func MarshalInvoiceLine(invoiceID string, line model.InvoiceLine) []string {
	row := make([]string, ilNumFields)
	row[ilColID] = line.ID
	row[ilColInvID] = invoiceID
	row[ilColItemID] = line.ItemID
	row[ilColDesc] = line.Description
	row[ilColQty] = line.Quantity.String()
	row[ilColPrice] = line.UnitPrice.StringFixed(2)
	if !line.DiscountPercent.IsZero() {
		row[ilColDisc] = line.DiscountPercent.String()
	}
	if !line.TaxRatePercent.IsZero() {
		row[ilColTaxRate] = line.TaxRatePercent.String()
	}
	row[ilColWhID] = line.WarehouseID
	return row
}

// UnmarshalInvoiceLine converts a CSV row to its invoice ID and line.
func UnmarshalInvoiceLine(record []string) (string, model.InvoiceLine, error) {
	if len(record) != ilNumFields {
		return "", model.InvoiceLine{}, fmt.Errorf("expected %d fields, got %d", ilNumFields, len(record))
	}

	qty, err := decimal.NewFromString(record[ilColQty])
	if err != nil {
		return "", model.InvoiceLine{}, fmt.Errorf("parsing quantity %q: %w", record[ilColQty], err)
	}

	price, err := decimal.NewFromString(record[ilColPrice])
	if err != nil {
		return "", model.InvoiceLine{}, fmt.Errorf("parsing unit_price %q: %w", record[ilColPrice], err)
	}

	var disc, taxRate decimal.Decimal
	if record[ilColDisc] != "" {
		disc, err = decimal.NewFromString(record[ilColDisc])
		if err != nil {
			return "", model.InvoiceLine{}, fmt.Errorf("parsing discount_percent %q: %w", record[ilColDisc], err)
		}
	}
	if record[ilColTaxRate] != "" {
		taxRate, err = decimal.NewFromString(record[ilColTaxRate])
		if err != nil {
			return "", model.InvoiceLine{}, fmt.Errorf("parsing tax_rate_percent %q: %w", record[ilColTaxRate], err)
		}
	}

	return record[ilColInvID], model.InvoiceLine{
		ID:              record[ilColID],
		ItemID:          record[ilColItemID],
		Description:     record[ilColDesc],
		Quantity:        qty,
		UnitPrice:       price,
		DiscountPercent: disc,
		TaxRatePercent:  taxRate,
		WarehouseID:     record[ilColWhID],
	}, nil
}
