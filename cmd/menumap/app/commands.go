package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/cmd/menumap/cmd/completion"
	"github.com/agentstation/menumap/cmd/menumap/cmd/menu"
	"github.com/agentstation/menumap/cmd/menumap/cmd/onboard"
	"github.com/agentstation/menumap/cmd/menumap/cmd/profile"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(menu.NewCommand(a))
	rootCmd.AddCommand(menu.NewRefreshCommand(a))
	rootCmd.AddCommand(onboard.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(menu.NewClearCommand(a))
	rootCmd.AddCommand(profile.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("menumap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
