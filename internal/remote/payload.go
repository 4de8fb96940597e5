package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

// payload is the remote document: {"menu": [...]}.
type payload struct {
	Menu *[]rawItem `json:"menu"`
}

type rawItem struct {
	Name        *string         `json:"name"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// Parse decodes a catalog document. Items keep the order in which they
// appear in the document. source names the origin in error messages.
func Parse(data []byte, source string) ([]menu.Item, error) {
	var doc payload
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", source, err)
	}
	if doc.Menu == nil {
		return nil, errors.NewParseError("json", source, `missing required field "menu"`, nil)
	}

	items := make([]menu.Item, 0, len(*doc.Menu))
	for i, raw := range *doc.Menu {
		item, err := raw.toItem()
		if err != nil {
			return nil, errors.NewParseError("json", fmt.Sprintf("%s: menu[%d]", source, i), err.Error(), err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r rawItem) toItem() (menu.Item, error) {
	if r.Name == nil {
		return menu.Item{}, fmt.Errorf(`missing required field "name"`)
	}
	price, err := parsePrice(r.Price)
	if err != nil {
		return menu.Item{}, err
	}
	item := menu.Item{
		Name:        *r.Name,
		Price:       price,
		Description: r.Description,
		Image:       r.Image,
	}
	if err := item.Validate(); err != nil {
		return menu.Item{}, err
	}
	return item, nil
}

// parsePrice accepts JSON numbers only. Quoted prices are rejected.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Decimal{}, fmt.Errorf(`missing required field "price"`)
	}
	if raw[0] == '"' {
		return decimal.Decimal{}, fmt.Errorf("price must be a number, got %s", raw)
	}
	price, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price must be a number, got %s", raw)
	}
	return price, nil
}
