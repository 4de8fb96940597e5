// Package onboard provides the onboarding command that records the user
// profile before the menu is shown.
package onboard

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/internal/profile"
	"github.com/agentstation/menumap/pkg/constants"
)

// NextScreen is the screen shown once onboarding is complete.
const NextScreen = "home"

// NewCommand creates the onboard command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		firstName string
		email     string
		force     bool
	)

	cmd := &cobra.Command{
		Use:     "onboard",
		GroupID: "core",
		Short:   "Register the user profile",
		Long: `Onboard validates and stores the first name and email of the user and
marks onboarding as completed. It refuses to run twice unless --force is
given.`,
		Example: `  menumap onboard --first-name Tilly --email tilly@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			p, err := profile.Onboard(ctx, app.Profiles(), firstName, email, force)
			if err != nil {
				return err
			}

			app.Logger().Debug().Str("initials", p.Initials()).Msg("Onboarding completed")
			cmd.Printf("Welcome, %s!\n", p.FirstName)
			cmd.Printf("next: %s\n", NextScreen)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name (letters only)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a completed profile")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
