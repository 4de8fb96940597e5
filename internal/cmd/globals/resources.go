package globals

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/pkg/errors"
)

// MenuFlags holds flags for menu listing.
type MenuFlags struct {
	Search   string
	Limit    int
	MaxPrice string
}

// AddMenuFlags adds menu listing flags to a command.
func AddMenuFlags(cmd *cobra.Command) *MenuFlags {
	flags := &MenuFlags{}

	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term matched against name and description")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")
	cmd.Flags().StringVar(&flags.MaxPrice, "max-price", "",
		"Only show items at or below this price (e.g., 9.99)")

	return flags
}

// Price parses the --max-price value. An empty flag yields zero.
func (f *MenuFlags) Price() (decimal.Decimal, error) {
	if f.MaxPrice == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(f.MaxPrice)
	if err != nil {
		return decimal.Zero, errors.NewValidationError("max-price", f.MaxPrice, "must be a decimal number")
	}
	if d.IsNegative() {
		return decimal.Zero, errors.NewValidationError("max-price", f.MaxPrice, "must not be negative")
	}
	return d, nil
}
