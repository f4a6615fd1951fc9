package domain

// DefaultCategories is the category set used when the caller supplies none.
// Order matters: the first element is the fallback category.
var DefaultCategories = []string{"Sales", "Infrastructure", "Marketing", "Software", "Food", "Other"}

// UncategorizedFallback is used only when no categories are supplied at all,
// which cannot happen through NewCategorySet but guards direct construction.
const UncategorizedFallback = "Uncategorized"

// CategorySet is an ordered set of distinct category names. The pipeline
// treats it as read-only; it never appends newly observed categories.
type CategorySet []string

// NewCategorySet builds a CategorySet from caller-supplied names, dropping
// empties and duplicates while preserving order. An empty result falls back
// to DefaultCategories.
func NewCategorySet(names []string) CategorySet {
	seen := make(map[string]struct{}, len(names))
	out := make(CategorySet, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return CategorySet(DefaultCategories)
	}
	return out
}

// Fallback returns the category that absorbs unclassifiable spend.
func (s CategorySet) Fallback() string {
	if len(s) == 0 {
		return UncategorizedFallback
	}
	return s[0]
}

// Contains reports whether name is a member of the set.
func (s CategorySet) Contains(name string) bool {
	for _, c := range s {
		if c == name {
			return true
		}
	}
	return false
}
