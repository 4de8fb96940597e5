// Package menu defines the catalog record served by the menu cache.
package menu

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// Item is one entry of the menu catalog.
//
// ID is assigned by the store on first persistence and is zero for items
// that have not been stored yet. Insertion order defines display order.
type Item struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Description string          `json:"description" yaml:"description"`
	Image       string          `json:"image" yaml:"image"`
}

// Validate checks the record invariants: a non-empty name and a
// non-negative price.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.NewValidationError("name", i.Name, "must not be empty")
	}
	if utf8.RuneCountInString(i.Name) > constants.MaxItemNameLength {
		return errors.NewValidationError("name", i.Name, "is too long")
	}
	if i.Price.IsNegative() {
		return errors.NewValidationError("price", i.Price.String(), "must not be negative")
	}
	if utf8.RuneCountInString(i.Description) > constants.MaxDescriptionLength {
		return errors.NewValidationError("description", len(i.Description), "is too long")
	}
	return nil
}

// Persisted reports whether the store has assigned an ID.
func (i Item) Persisted() bool {
	return i.ID > 0
}

// Equivalent reports whether two items carry the same catalog content,
// ignoring the store-assigned ID.
func (i Item) Equivalent(other Item) bool {
	return i.Name == other.Name &&
		i.Price.Equal(other.Price) &&
		i.Description == other.Description &&
		i.Image == other.Image
}

// FormatPrice renders the price with two decimals, e.g. "12.50".
func (i Item) FormatPrice() string {
	return i.Price.StringFixed(2)
}

// ValidateAll validates every item and reports the first failure.
func ValidateAll(items []Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ImageURL resolves an image reference against base. An empty base uses
// the default image location. References that already are absolute URLs
// are returned unchanged.
func ImageURL(base, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewValidationError("image", ref, "must not be empty")
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref, nil
	}

	query := ""
	if base == "" {
		base = constants.DefaultImageBaseURL
		query = constants.DefaultImageQuery
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", errors.WrapValidation("image_base_url", err)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	resolved := baseURL.ResolveReference(&url.URL{Path: ref})
	if query != "" {
		resolved.RawQuery = query
	}
	return resolved.String(), nil
}
