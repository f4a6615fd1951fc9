package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kosh/internal/domain"
	"kosh/internal/money"
)

func TestSubtotal(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Shirt", Quantity: 2, UnitPrice: 40},
		{Name: "Socks", Quantity: 3, UnitPrice: 5},
	}
	assert.Equal(t, 95.0, money.Subtotal(items))
	assert.Equal(t, 0.0, money.Subtotal(nil))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, 115.0, money.GrandTotal(95, 20))
}

func TestCategoryTotals(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Shirt", Quantity: 1, UnitPrice: 80, Category: "Clothing"},
		{Name: "Socks", Quantity: 2, UnitPrice: 10, Category: "Clothing"},
		{Name: "Apple", Quantity: 1, UnitPrice: 5, Category: "Food"},
		{Name: "Mystery", Quantity: 1, UnitPrice: 99}, // unresolved, skipped
	}

	prices := money.CategoryTotals(items)
	assert.Equal(t, domain.CategoryPrices{"Clothing": 100, "Food": 5}, prices)
	assert.Equal(t, 105.0, prices.Sum())
}

func TestValidateItems(t *testing.T) {
	valid := []domain.LineItem{{Name: "Shirt", Quantity: 1, UnitPrice: 80}}
	require.NoError(t, money.ValidateItems(valid))

	err := money.ValidateItems([]domain.LineItem{{Name: "Bad", Quantity: 0, UnitPrice: 5}})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = money.ValidateItems([]domain.LineItem{{Name: "Bad", Quantity: 1, UnitPrice: -5}})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
