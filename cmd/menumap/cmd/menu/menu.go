// Package menu provides the commands that read and maintain the cached
// menu catalog.
package menu

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/internal/cmd/filter"
	"github.com/agentstation/menumap/internal/cmd/globals"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/menu"
)

// NewCommand creates the menu command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *globals.MenuFlags

	cmd := &cobra.Command{
		Use:     "menu",
		GroupID: "core",
		Short:   "Show the menu",
		Aliases: []string{"ls", "list"},
		Long: `Menu prints the catalog from the local store.

When the store is empty the catalog is fetched from the remote endpoint
and saved first. A failed fetch leaves the store untouched.`,
		Example: `  menumap menu                      # Show the full menu
  menumap menu --search salad       # Items mentioning "salad"
  menumap menu --max-price 8 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			maxPrice, err := flags.Price()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			items, err := loadCatalog(ctx, app)
			if err != nil {
				return err
			}

			f := &filter.MenuFilter{
				Search:   flags.Search,
				MaxPrice: maxPrice,
				Limit:    flags.Limit,
			}
			return render(cmd, app, f.Apply(items))
		},
	}

	flags = globals.AddMenuFlags(cmd)
	cmd.AddCommand(newStatusCommand(app))

	return cmd
}

// loadCatalog reads through the cache and explains network failures.
func loadCatalog(ctx context.Context, app appcontext.Interface) ([]menu.Item, error) {
	client, err := app.Client()
	if err != nil {
		return nil, err
	}

	items, err := client.Catalog(ctx)
	if err != nil {
		app.Logger().Debug().Err(err).Str("state", client.State().String()).Msg("Catalog unavailable")
		if errors.IsNetwork(err) {
			return nil, fmt.Errorf("menu is not available offline yet: %w", err)
		}
		return nil, err
	}
	return items, nil
}

// render writes items in the configured format. An empty table gets a
// short notice instead of bare headers.
func render(cmd *cobra.Command, app appcontext.Interface, items []menu.Item) error {
	format := output.DetectFormat(app.OutputFormat())
	if _, err := output.ParseFormat(string(format)); err != nil {
		return err
	}

	if len(items) == 0 && (format == output.FormatTable || format == output.FormatWide) {
		cmd.PrintErrln("No menu items.")
		return nil
	}
	return output.FormatMenu(cmd.OutOrStdout(), format, items, app.ImageBaseURL())
}
