// Package category assigns each line item a category from the caller's
// category set and derives the bill-level spend-per-category map.
package category

import (
	"context"

	"github.com/rs/zerolog"

	"kosh/internal/domain"
	"kosh/internal/logger"
	"kosh/internal/money"
	"kosh/internal/port"
)

// Resolution is the outcome of categorizing one bill. It is always usable:
// classifier failures degrade to the fallback category, they never surface
// to the caller.
type Resolution struct {
	Items   []domain.LineItem
	Prices  domain.CategoryPrices
	Primary string
}

// Resolver wraps the external classifier with validation and fallback policy.
type Resolver struct {
	classifier port.Classifier
	log        zerolog.Logger
}

// NewResolver creates a Resolver backed by the given classifier.
func NewResolver(classifier port.Classifier) *Resolver {
	return &Resolver{
		classifier: classifier,
		log:        logger.WithComponent("category-resolver"),
	}
}

// Resolve fills in a category for every item and computes the bill's
// CategoryPrices and primary (dominant-spend) category.
//
// Item categories already present and valid are kept as-is; only items with
// a missing or unrecognized category go through the classifier. The
// classifier reports bill-level spend per category, so unresolved items all
// receive its dominant category. If the classifier fails or returns nothing
// usable, unresolved items receive categories.Fallback().
//
// explicitTotal is only consulted on the empty-items path.
func (r *Resolver) Resolve(ctx context.Context, items []domain.LineItem, categories domain.CategorySet, explicitTotal float64) *Resolution {
	if len(items) == 0 {
		fallback := categories.Fallback()
		return &Resolution{
			Items:   nil,
			Prices:  domain.CategoryPrices{fallback: explicitTotal},
			Primary: fallback,
		}
	}

	resolved := make([]domain.LineItem, len(items))
	copy(resolved, items)

	unresolved := 0
	for i := range resolved {
		if !categories.Contains(resolved[i].Category) {
			resolved[i].Category = ""
			unresolved++
		}
	}

	if unresolved > 0 {
		dominant := r.dominantCategory(ctx, resolved, categories)
		for i := range resolved {
			if resolved[i].Category == "" {
				resolved[i].Category = dominant
			}
		}
	}

	prices := money.CategoryTotals(resolved)
	return &Resolution{
		Items:   resolved,
		Prices:  prices,
		Primary: dominantOf(prices, categories),
	}
}

// dominantCategory asks the classifier for the bill's spend-per-category map
// and returns the highest-spend category that is a member of the set.
// Category names outside the set are a contract violation by the service and
// are discarded rather than persisted.
func (r *Resolver) dominantCategory(ctx context.Context, items []domain.LineItem, categories domain.CategorySet) string {
	wire := make([]port.ClassifierItem, 0, len(items))
	for _, it := range items {
		wire = append(wire, port.ClassifierItem{Name: it.Name, TotalPrice: money.LineTotal(it)})
	}

	prices, err := r.classifier.CategorizeItems(ctx, wire, categories)
	if err != nil {
		r.log.Warn().Err(err).Msg("classifier unavailable, using fallback category")
		return categories.Fallback()
	}

	valid := make(domain.CategoryPrices, len(prices))
	for cat, total := range prices {
		if categories.Contains(cat) {
			valid[cat] = total
		} else {
			r.log.Warn().Str("category", cat).Msg("classifier returned unknown category, discarding")
		}
	}
	if len(valid) == 0 {
		r.log.Warn().Msg("classifier returned no usable categories, using fallback")
		return categories.Fallback()
	}
	return dominantOf(valid, categories)
}

// dominantOf picks the highest-total category, breaking ties by category
// set order so the result is deterministic.
func dominantOf(prices domain.CategoryPrices, categories domain.CategorySet) string {
	best := ""
	bestTotal := 0.0
	for _, cat := range categories {
		total, ok := prices[cat]
		if !ok {
			continue
		}
		if best == "" || total > bestTotal {
			best = cat
			bestTotal = total
		}
	}
	if best == "" {
		return categories.Fallback()
	}
	return best
}
