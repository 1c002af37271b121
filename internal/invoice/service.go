package invoice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/id"
	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// StockAdjuster deducts invoiced quantities from inventory. Satisfied
// by the inventory service; nil disables stock integration.
type StockAdjuster interface {
	Adjust(itemID, warehouseID string, delta decimal.Decimal, reference string) error
}

// Service provides invoice business logic over a repository.
type Service struct {
	repo  store.Repository
	stock StockAdjuster
}

// NewService creates an invoice Service. stock may be nil.
func NewService(repo store.Repository, stock StockAdjuster) *Service {
	return &Service{repo: repo, stock: stock}
}

// LineParams is one line of an invoice being created.
type LineParams struct {
	ItemID          string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal
	WarehouseID     string
}

// CreateParams holds parameters for creating a draft invoice.
type CreateParams struct {
	Date       time.Time
	DueDate    time.Time
	CustomerID string
	Lines      []LineParams
}

// Create validates and stores a draft invoice with computed totals.
func (s *Service) Create(params CreateParams) (model.Invoice, error) {
	if params.CustomerID == "" {
		return model.Invoice{}, fmt.Errorf("customer is required")
	}
	if err := s.checkCustomer(params.CustomerID); err != nil {
		return model.Invoice{}, err
	}
	if len(params.Lines) == 0 {
		return model.Invoice{}, fmt.Errorf("invoice has no lines")
	}

	inv := model.Invoice{
		ID:         uuid.NewString(),
		Date:       params.Date,
		DueDate:    params.DueDate,
		CustomerID: params.CustomerID,
		Status:     model.InvoiceDraft,
	}
	for _, lp := range params.Lines {
		if lp.Quantity.IsNegative() || lp.UnitPrice.IsNegative() {
			return model.Invoice{}, fmt.Errorf("quantity and unit price must not be negative")
		}
		inv.Lines = append(inv.Lines, model.InvoiceLine{
			ID:              uuid.NewString(),
			ItemID:          lp.ItemID,
			Description:     lp.Description,
			Quantity:        lp.Quantity,
			UnitPrice:       lp.UnitPrice,
			DiscountPercent: lp.DiscountPercent,
			TaxRatePercent:  lp.TaxRatePercent,
			WarehouseID:     lp.WarehouseID,
		})
	}

	totals := Compute(inv.Lines)
	inv.Subtotal = totals.Subtotal
	inv.DiscountTotal = totals.DiscountTotal
	inv.TaxTotal = totals.TaxTotal
	inv.Total = totals.Total

	if err := s.repo.SaveInvoice(inv); err != nil {
		return model.Invoice{}, fmt.Errorf("saving invoice: %w", err)
	}
	return inv, nil
}

// Issue moves a draft invoice to issued, assigning its number and
// deducting invoiced stock for lines that name an item and warehouse.
func (s *Service) Issue(invoiceID string) (model.Invoice, error) {
	inv, err := s.get(invoiceID)
	if err != nil {
		return model.Invoice{}, err
	}
	if inv.Status != model.InvoiceDraft {
		return model.Invoice{}, fmt.Errorf("invoice %s is %s, only drafts can be issued", inv.ID, inv.Status)
	}

	seq, err := s.nextNumberSeq(inv.Date.Year())
	if err != nil {
		return model.Invoice{}, err
	}
	inv.Number = id.FormatInvoiceNumber(inv.Date.Year(), seq)
	inv.Status = model.InvoiceIssued

	if err := s.repo.SaveInvoice(inv); err != nil {
		return model.Invoice{}, fmt.Errorf("saving invoice: %w", err)
	}

	if s.stock != nil {
		for _, line := range inv.Lines {
			if line.ItemID == "" || line.WarehouseID == "" || !line.Quantity.IsPositive() {
				continue
			}
			if err := s.stock.Adjust(line.ItemID, line.WarehouseID, line.Quantity.Neg(), inv.Number); err != nil {
				return model.Invoice{}, fmt.Errorf("deducting stock for line %s: %w", line.ID, err)
			}
		}
	}
	return inv, nil
}

// MarkPaid moves an issued or overdue invoice to paid.
func (s *Service) MarkPaid(invoiceID string) (model.Invoice, error) {
	inv, err := s.get(invoiceID)
	if err != nil {
		return model.Invoice{}, err
	}
	if inv.Status != model.InvoiceIssued && inv.Status != model.InvoiceOverdue {
		return model.Invoice{}, fmt.Errorf("invoice %s is %s, only issued invoices can be paid", inv.ID, inv.Status)
	}
	inv.Status = model.InvoicePaid
	if err := s.repo.SaveInvoice(inv); err != nil {
		return model.Invoice{}, fmt.Errorf("saving invoice: %w", err)
	}
	return inv, nil
}

// RefreshOverdue flips issued invoices past their due date to overdue.
// Returns the invoices that changed.
func (s *Service) RefreshOverdue(asOf time.Time) ([]model.Invoice, error) {
	invoices, err := s.repo.ListInvoices()
	if err != nil {
		return nil, err
	}

	var changed []model.Invoice
	for _, inv := range invoices {
		if inv.Status != model.InvoiceIssued || inv.DueDate.IsZero() || !inv.DueDate.Before(asOf) {
			continue
		}
		inv.Status = model.InvoiceOverdue
		if err := s.repo.SaveInvoice(inv); err != nil {
			return nil, fmt.Errorf("saving invoice %s: %w", inv.ID, err)
		}
		changed = append(changed, inv)
	}
	return changed, nil
}

// All returns every invoice.
func (s *Service) All() ([]model.Invoice, error) {
	return s.repo.ListInvoices()
}

func (s *Service) get(invoiceID string) (model.Invoice, error) {
	invoices, err := s.repo.ListInvoices()
	if err != nil {
		return model.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == invoiceID {
			return inv, nil
		}
	}
	return model.Invoice{}, fmt.Errorf("invoice %s: %w", invoiceID, store.ErrNotFound)
}

func (s *Service) checkCustomer(customerID string) error {
	parties, err := s.repo.ListParties()
	if err != nil {
		return err
	}
	for _, p := range parties {
		if p.ID == customerID {
			if p.Kind != model.PartyCustomer {
				return fmt.Errorf("party %s is a %s, not a customer", p.Name, p.Kind)
			}
			return nil
		}
	}
	return fmt.Errorf("customer %s: %w", customerID, store.ErrNotFound)
}

func (s *Service) nextNumberSeq(year int) (int, error) {
	invoices, err := s.repo.ListInvoices()
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, inv := range invoices {
		if inv.Number == "" {
			continue
		}
		y, seq, err := id.ParseInvoiceNumber(inv.Number)
		if err != nil || y != year {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}
