package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kosh/internal/domain"
	"kosh/internal/ledger"
)

func floatPtr(v float64) *float64 { return &v }

func TestMaterialize_ItemsPlusTax(t *testing.T) {
	bill := &domain.NormalizedBill{
		Tax:    20,
		Date:   "2026-08-01",
		Type:   domain.TypeExpense,
		Source: domain.SourceScan,
	}
	items := []domain.LineItem{
		{Name: "Shirt", Quantity: 1, UnitPrice: 80, Category: "Clothing"},
	}

	entries, err := ledger.Materialize(ledger.Input{Bill: bill, Items: items, Primary: "Clothing"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Shirt", entries[0].Description)
	assert.Equal(t, -80.0, entries[0].Amount)
	assert.Equal(t, "Clothing", entries[0].Category)
	assert.Equal(t, domain.TypeExpense, entries[0].Type)
	assert.Equal(t, "2026-08-01", entries[0].Date)

	assert.Equal(t, "Tax", entries[1].Description)
	assert.Equal(t, -20.0, entries[1].Amount)
	assert.Equal(t, "Clothing", entries[1].Category, "tax rides on the primary category")
}

func TestMaterialize_NoItemsUsesExplicitTotal(t *testing.T) {
	bill := &domain.NormalizedBill{
		ExplicitTotal: floatPtr(150),
		Date:          "2026-08-01",
		Source:        domain.SourceScan,
	}

	entries, err := ledger.Materialize(ledger.Input{Bill: bill, Primary: "Other"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "Scanned Receipt", entries[0].Description)
	assert.Equal(t, -150.0, entries[0].Amount)
	assert.Equal(t, "Other", entries[0].Category)
}

func TestMaterialize_NoItemsPrefersInvoiceRefDescription(t *testing.T) {
	bill := &domain.NormalizedBill{
		ExplicitTotal: floatPtr(99),
		InvoiceRef:    "INV-042",
		Source:        domain.SourceScan,
	}

	entries, err := ledger.Materialize(ledger.Input{Bill: bill, Primary: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "INV-042", entries[0].Description)
}

func TestMaterialize_NoItemsNoTotalFails(t *testing.T) {
	bill := &domain.NormalizedBill{Source: domain.SourceScan}
	_, err := ledger.Materialize(ledger.Input{Bill: bill, Primary: "Other"})
	assert.ErrorIs(t, err, domain.ErrInvalidBill)
}

func TestMaterialize_VoiceIncomeIsPositive(t *testing.T) {
	bill := &domain.NormalizedBill{
		Type:   domain.TypeIncome,
		Source: domain.SourceVoice,
	}
	items := []domain.LineItem{
		{Name: "Consulting", Quantity: 1, UnitPrice: 500, Category: "Sales"},
	}

	entries, err := ledger.Materialize(ledger.Input{Bill: bill, Items: items, Primary: "Sales"})
	require.NoError(t, err)
	assert.Equal(t, 500.0, entries[0].Amount)
	assert.Equal(t, domain.TypeIncome, entries[0].Type)
}

func TestMaterialize_ScanIncomeStaysExpense(t *testing.T) {
	// Only voice input can record income; scans are always expenses.
	bill := &domain.NormalizedBill{
		Type:   domain.TypeIncome,
		Source: domain.SourceScan,
	}
	items := []domain.LineItem{
		{Name: "Refund", Quantity: 1, UnitPrice: 40, Category: "Other"},
	}

	entries, err := ledger.Materialize(ledger.Input{Bill: bill, Items: items, Primary: "Other"})
	require.NoError(t, err)
	assert.Equal(t, -40.0, entries[0].Amount)
	assert.Equal(t, domain.TypeExpense, entries[0].Type)
}

func TestMaterialize_InvalidItemNumbersRejected(t *testing.T) {
	bill := &domain.NormalizedBill{Source: domain.SourceScan}
	items := []domain.LineItem{{Name: "Bad", Quantity: -1, UnitPrice: 10, Category: "Other"}}

	_, err := ledger.Materialize(ledger.Input{Bill: bill, Items: items, Primary: "Other"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestMaterialize_NilBill(t *testing.T) {
	_, err := ledger.Materialize(ledger.Input{})
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestMaterialize_Deterministic(t *testing.T) {
	bill := &domain.NormalizedBill{
		Tax:    5,
		Date:   "2026-08-01",
		Source: domain.SourceScan,
	}
	items := []domain.LineItem{
		{Name: "A", Quantity: 2, UnitPrice: 10, Category: "Food"},
		{Name: "B", Quantity: 1, UnitPrice: 30, Category: "Other"},
	}

	first, err := ledger.Materialize(ledger.Input{Bill: bill, Items: items, Primary: "Other"})
	require.NoError(t, err)
	second, err := ledger.Materialize(ledger.Input{Bill: bill, Items: items, Primary: "Other"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMaterialize_MissingDateDefaultsToToday(t *testing.T) {
	bill := &domain.NormalizedBill{ExplicitTotal: floatPtr(10), Source: domain.SourceScan}
	entries, err := ledger.Materialize(ledger.Input{Bill: bill, Primary: "Other"})
	require.NoError(t, err)
	assert.Equal(t, domain.Today(), entries[0].Date)
}
