package ingest

import (
	"fmt"
	"time"

	"kosh/internal/domain"
)

// QRItem is a line item in the compact wire format carried inside scanned
// payment codes: n=name, q=quantity, p=unit price, c=category suggestion.
type QRItem struct {
	Name      string  `json:"n"`
	Quantity  float64 `json:"q"`
	UnitPrice float64 `json:"p"`
	Category  string  `json:"c,omitempty"`
}

// QRBill is the structured payload decoded from a scanned code. Either Items
// or one of Total/TotalAmount must be present.
type QRBill struct {
	Items       []QRItem `json:"items"`
	Tax         float64  `json:"tax"`
	Total       *float64 `json:"total,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
	Date        string   `json:"date,omitempty"`
	Invoice     string   `json:"invoice,omitempty"`
	Merchant    string   `json:"merchant,omitempty"`
}

// QRAdapter ingests pre-structured bill payloads. No external calls: the
// payload already carries items, so only mapping and validation happen here.
type QRAdapter struct{}

// NewQRAdapter creates a QRAdapter.
func NewQRAdapter() *QRAdapter {
	return &QRAdapter{}
}

// Ingest maps a decoded payload to a NormalizedBill. A payload without items
// falls back to aggregate mode with total (or totalAmount) as the explicit
// total. Scanned bills are always expenses.
func (a *QRAdapter) Ingest(bill *QRBill) (*domain.NormalizedBill, error) {
	if bill == nil {
		return nil, fmt.Errorf("missing bill: %w", domain.ErrMissingInput)
	}
	if bill.Tax < 0 {
		return nil, fmt.Errorf("negative tax: %w", domain.ErrInvalidAmount)
	}

	out := &domain.NormalizedBill{
		Tax:        bill.Tax,
		Date:       normalizeDate(bill.Date),
		InvoiceRef: bill.Invoice,
		Merchant:   bill.Merchant,
		Type:       domain.TypeExpense,
		Source:     domain.SourceScan,
	}

	if len(bill.Items) == 0 {
		total := 0.0
		switch {
		case bill.Total != nil:
			total = *bill.Total
		case bill.TotalAmount != nil:
			total = *bill.TotalAmount
		}
		if total < 0 {
			return nil, fmt.Errorf("negative total: %w", domain.ErrInvalidAmount)
		}
		out.ExplicitTotal = &total
		return out, nil
	}

	items := make([]domain.LineItem, 0, len(bill.Items))
	for i, it := range bill.Items {
		qty := it.Quantity
		if qty == 0 {
			// Quantity is optional on the wire; absent means one.
			qty = 1
		}
		if qty < 0 || it.UnitPrice < 0 {
			return nil, fmt.Errorf("item %d (%q): %w", i, it.Name, domain.ErrInvalidAmount)
		}
		name := it.Name
		if name == "" {
			name = syntheticItemName
		}
		items = append(items, domain.LineItem{
			Name:      name,
			Quantity:  qty,
			UnitPrice: it.UnitPrice,
			Category:  it.Category,
		})
	}
	out.Items = items
	return out, nil
}

// normalizeDate keeps a valid ISO date, otherwise defaults to today.
func normalizeDate(date string) string {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return domain.Today()
	}
	return date
}
