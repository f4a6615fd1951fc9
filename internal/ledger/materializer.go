// Package ledger turns a resolved bill into the ledger entry rows handed to
// persistence.
package ledger

import (
	"fmt"
	"math"

	"kosh/internal/domain"
	"kosh/internal/money"
)

// aggregateDescription names the single entry emitted when a bill carries
// no line items.
const aggregateDescription = "Scanned Receipt"

// taxDescription names the synthetic entry carrying a bill's tax amount.
const taxDescription = "Tax"

// Input is a bill plus the resolver's output for it.
type Input struct {
	Bill    *domain.NormalizedBill
	Items   []domain.LineItem // resolved: every item has a category
	Primary string            // dominant-spend category for the bill
}

// Materialize emits one ledger entry per line item, plus a synthetic Tax
// entry when the bill carries tax. A bill with no items yields exactly one
// aggregate entry from its explicit total.
//
// Sign convention: expenses are negative, income positive. Scanned bills are
// always recorded as expenses regardless of any inferred type; that is a
// product rule, only voice input can record income. Output is deterministic:
// identical input yields structurally identical entries.
func Materialize(in Input) ([]domain.LedgerEntry, error) {
	bill := in.Bill
	if bill == nil {
		return nil, fmt.Errorf("missing bill: %w", domain.ErrMissingInput)
	}

	sign := -1.0
	if bill.Source == domain.SourceVoice && bill.Type == domain.TypeIncome {
		sign = 1.0
	}
	entryType := domain.TypeExpense
	if sign > 0 {
		entryType = domain.TypeIncome
	}

	date := bill.Date
	if date == "" {
		date = domain.Today()
	}

	base := domain.LedgerEntry{
		Date:       date,
		Type:       entryType,
		Status:     domain.StatusCompleted,
		InvoiceRef: bill.InvoiceRef,
		Source:     bill.Source,
	}

	if len(in.Items) == 0 {
		if bill.ExplicitTotal == nil {
			return nil, domain.ErrInvalidBill
		}
		entry := base
		entry.Description = bill.InvoiceRef
		if entry.Description == "" {
			entry.Description = aggregateDescription
		}
		entry.Category = in.Primary
		entry.Amount = sign * math.Abs(*bill.ExplicitTotal)
		return []domain.LedgerEntry{entry}, nil
	}

	if err := money.ValidateItems(in.Items); err != nil {
		return nil, err
	}

	entries := make([]domain.LedgerEntry, 0, len(in.Items)+1)
	for _, it := range in.Items {
		entry := base
		entry.Description = it.Name
		entry.Category = it.Category
		entry.Amount = sign * math.Abs(money.LineTotal(it))
		entries = append(entries, entry)
	}

	if bill.Tax > 0 {
		entry := base
		entry.Description = taxDescription
		entry.Category = in.Primary
		entry.Amount = sign * bill.Tax
		entries = append(entries, entry)
	}

	return entries, nil
}
