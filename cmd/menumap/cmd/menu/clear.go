package menu

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/pkg/constants"
)

// NewClearCommand creates the clear command.
func NewClearCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		GroupID: "management",
		Short:   "Delete the stored menu",
		Long:    `Clear removes every stored menu row. The next 'menumap menu' fetches again.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			if err := client.Clear(ctx); err != nil {
				return err
			}
			cmd.Println("Menu cleared.")
			return nil
		},
	}
}
