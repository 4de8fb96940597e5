package menu

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/pkg/constants"
)

// NewRefreshCommand creates the refresh command.
func NewRefreshCommand(app appcontext.Interface) *cobra.Command {
	var appendRows bool

	cmd := &cobra.Command{
		Use:     "refresh",
		GroupID: "core",
		Short:   "Fetch the menu again and replace the stored copy",
		Long: `Refresh fetches the remote catalog and replaces the stored rows in one
transaction. If the fetch fails the stored menu is kept.

With --append the fetched rows are added after the existing ones instead.
This keeps the older rows and can produce duplicates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			var opts []menumap.RefreshOption
			if appendRows {
				opts = append(opts, menumap.WithAppend())
			}

			items, err := client.Refresh(ctx, opts...)
			if err != nil {
				return err
			}

			app.Logger().Info().Int("items", len(items)).Bool("append", appendRows).Msg("Menu refreshed")
			return render(cmd, app, items)
		},
	}

	cmd.Flags().BoolVar(&appendRows, "append", false, "append fetched rows instead of replacing")

	return cmd
}
