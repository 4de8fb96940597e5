package output

import (
	"io"

	"github.com/agentstation/menumap/internal/cmd/table"
	"github.com/agentstation/menumap/internal/profile"
	"github.com/agentstation/menumap/pkg/menu"
)

// MenuItem is the structured (json, yaml) form of a menu item.
type MenuItem struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// MenuItems converts items to their structured form, resolving image URLs
// against imageBase.
func MenuItems(items []menu.Item, imageBase string) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		price, _ := item.Price.Float64()
		m := MenuItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       price,
			Description: item.Description,
			Image:       item.Image,
		}
		if item.Image != "" {
			if u, err := menu.ImageURL(imageBase, item.Image); err == nil {
				m.ImageURL = u
			}
		}
		out = append(out, m)
	}
	return out
}

// FormatMenu writes items to w in the given format.
func FormatMenu(w io.Writer, format Format, items []menu.Item, imageBase string) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, MenuItems(items, imageBase))
	default:
		return formatter.Format(w, table.MenuToTableData(items, format == FormatWide, imageBase))
	}
}

// FormatProfile writes a profile to w in the given format.
func FormatProfile(w io.Writer, format Format, p profile.Profile) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, p)
	default:
		return formatter.Format(w, table.ProfileToTableData(p))
	}
}
