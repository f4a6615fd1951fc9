// Package money holds the pure aggregation helpers shared by every
// ingestion path. No I/O, no state.
package money

import (
	"fmt"

	"kosh/internal/domain"
)

// LineTotal returns the monetary total for a single line item.
func LineTotal(item domain.LineItem) float64 {
	return item.UnitPrice * item.Quantity
}

// Subtotal sums the line totals of all items. An empty slice yields 0.
func Subtotal(items []domain.LineItem) float64 {
	var total float64
	for _, it := range items {
		total += LineTotal(it)
	}
	return total
}

// GrandTotal returns the tax-inclusive total.
func GrandTotal(subtotal, tax float64) float64 {
	return subtotal + tax
}

// CategoryTotals groups items by resolved category, summing line totals.
// Items with no resolved category are skipped; callers must run the
// resolver first.
func CategoryTotals(items []domain.LineItem) domain.CategoryPrices {
	prices := make(domain.CategoryPrices)
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		prices[it.Category] += LineTotal(it)
	}
	return prices
}

// ValidateItems rejects non-positive quantities and negative unit prices.
func ValidateItems(items []domain.LineItem) error {
	for i, it := range items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return fmt.Errorf("item %d (%q): %w", i, it.Name, domain.ErrInvalidAmount)
		}
	}
	return nil
}
