package menu

import (
	"testing"

	"github.com/shopspring/decimal"
)

// TestItem creates a single unpersisted item with sensible defaults.
func TestItem(t testing.TB) Item {
	t.Helper()
	return Item{
		Name:        "Greek Salad",
		Price:       decimal.RequireFromString("12.5"),
		Description: "The famous greek salad of crispy lettuce, peppers, olives and our Chicago style feta cheese.",
		Image:       "greekSalad.jpg",
	}
}

// TestItems creates the three-item catalog used across the test suites.
func TestItems(t testing.TB) []Item {
	t.Helper()
	return []Item{
		TestItem(t),
		{
			Name:        "Bruschetta",
			Price:       decimal.RequireFromString("7.99"),
			Description: "Our Bruschetta is made from grilled bread that has been smeared with garlic and seasoned with salt and olive oil.",
			Image:       "bruschetta.jpg",
		},
		{
			Name:        "Lemon Dessert",
			Price:       decimal.RequireFromString("4.99"),
			Description: "This comes straight from grandma's recipe book.",
			Image:       "lemonDessert.jpg",
		},
	}
}
