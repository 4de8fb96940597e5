package menu

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/appcontext"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/pkg/constants"
)

// Status summarises the stored catalog without fetching.
type Status struct {
	State string `json:"state" yaml:"state"`
	Items int    `json:"items" yaml:"items"`
}

func newStatusCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how many items are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			n, err := client.Count(ctx)
			if err != nil {
				return err
			}
			// A new process has not served anything yet, so stored rows win
			state := client.State()
			if n > 0 {
				state = menumap.StatePopulated
			}
			status := Status{State: state.String(), Items: n}

			format := output.DetectFormat(app.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), status)
			default:
				return output.NewFormatter(output.FormatTable).Format(cmd.OutOrStdout(), output.Data{
					Headers: []string{"Property", "Value"},
					Rows: [][]string{
						{"State", output.Label(status.State)},
						{"Items", strconv.Itoa(status.Items)},
					},
				})
			}
		},
	}
}
