// Package ingest turns raw inputs (receipt images, voice clips, decoded QR
// payloads) into the common NormalizedBill shape. Categorization and
// materialization happen downstream, uniformly for all three paths.
package ingest

import (
	"kosh/internal/domain"
	"kosh/internal/port"
)

// syntheticItemName is used when extraction yields no items and no
// description to name the fallback item after.
const syntheticItemName = "Transaction"

// billFromExtraction maps an extraction result onto a NormalizedBill.
// A zero-item extraction degrades to a single synthetic item named from the
// description, priced at 0 so the user can fill in the amount.
func billFromExtraction(ex *port.Extraction, source domain.Source, fallback string) *domain.NormalizedBill {
	items := make([]domain.LineItem, 0, len(ex.Items))
	for _, it := range ex.Items {
		items = append(items, domain.LineItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Category:  it.Category,
		})
	}

	if len(items) == 0 {
		name := ex.Description
		if name == "" {
			name = syntheticItemName
		}
		items = append(items, domain.LineItem{Name: name, Quantity: 1, UnitPrice: 0, Category: fallback})
	}

	txType := domain.TypeExpense
	if ex.Type == string(domain.TypeIncome) {
		txType = domain.TypeIncome
	}

	return &domain.NormalizedBill{
		Items:       items,
		Date:        domain.Today(),
		Description: ex.Description,
		Type:        txType,
		Source:      source,
	}
}
