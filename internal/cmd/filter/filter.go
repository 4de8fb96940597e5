// Package filter narrows menu listings for the CLI.
package filter

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/menumap/pkg/menu"
)

// MenuFilter applies filters to menu item lists
type MenuFilter struct {
	Search   string // matched against name and description, case-insensitive
	MaxPrice decimal.Decimal
	Limit    int
}

// Apply filters a slice of items. The input order is preserved.
func (f *MenuFilter) Apply(items []menu.Item) []menu.Item {
	if f == nil || f.isEmpty() {
		return items
	}

	filtered := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if f.matches(item) {
			filtered = append(filtered, item)
		}
		if f.Limit > 0 && len(filtered) == f.Limit {
			break
		}
	}

	return filtered
}

func (f *MenuFilter) isEmpty() bool {
	return f.Search == "" &&
		f.MaxPrice.IsZero() &&
		f.Limit <= 0
}

func (f *MenuFilter) matches(item menu.Item) bool {
	// Price filter
	if f.MaxPrice.IsPositive() && item.Price.GreaterThan(f.MaxPrice) {
		return false
	}

	// Search filter
	if f.Search != "" && !f.matchesSearch(item) {
		return false
	}

	return true
}

func (f *MenuFilter) matchesSearch(item menu.Item) bool {
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.Description), term)
}
