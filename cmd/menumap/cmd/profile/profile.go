// Package profile provides the command that shows the stored user profile.
package profile

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// NewCommand creates the profile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		GroupID: "management",
		Short:   "Show the stored user profile",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			p, err := app.Profiles().Load(ctx)
			if errors.IsNotFound(err) {
				cmd.PrintErrln("No profile yet. Run 'menumap onboard' first.")
				return nil
			}
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.FormatProfile(cmd.OutOrStdout(), format, p)
		},
	}
}
