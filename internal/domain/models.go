package domain

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one purchased or sold item on a bill. Category is empty until
// the resolver (or the extraction call) fills it.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category,omitempty"`
}

// NormalizedBill is the common intermediate produced by every ingestion
// adapter. Items may be empty only when ExplicitTotal is set (aggregate
// fallback mode).
type NormalizedBill struct {
	Items         []LineItem      `json:"items"`
	Tax           float64         `json:"tax"`
	ExplicitTotal *float64        `json:"explicit_total,omitempty"`
	Date          string          `json:"date"`
	InvoiceRef    string          `json:"invoice_ref,omitempty"`
	Merchant      string          `json:"merchant,omitempty"`
	Description   string          `json:"description,omitempty"`
	Type          TransactionType `json:"type"`
	Source        Source          `json:"source"`
	Transcript    string          `json:"transcript,omitempty"`
}

// CategoryPrices maps a category name to the total spend attributed to it.
type CategoryPrices map[string]float64

// Sum returns the total across all categories.
func (p CategoryPrices) Sum() float64 {
	var total float64
	for _, v := range p {
		total += v
	}
	return total
}

// LedgerEntry is one persisted ledger row. Amounts are negative for expenses
// and positive for income. Entries are immutable after insertion except for
// deletion.
type LedgerEntry struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Date        string          `db:"entry_date" json:"date"`
	Description string          `db:"description" json:"description"`
	Category    string          `db:"category" json:"category"`
	Type        TransactionType `db:"type" json:"type"`
	Amount      float64         `db:"amount" json:"amount"`
	Status      EntryStatus     `db:"status" json:"status"`
	InvoiceRef  string          `db:"invoice_ref" json:"invoice_ref,omitempty"`
	Source      Source          `db:"source" json:"source"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// DateLayout is the ISO date format used on bills and ledger entries.
const DateLayout = "2006-01-02"

// Today returns the current date in DateLayout, used when a source provides
// no date of its own.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
