// Package completion writes shell completion scripts for the CLI.
package completion

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	Bash       = "bash"
	Zsh        = "zsh"
	Fish       = "fish"
	PowerShell = "powershell"
)

// Shells lists the supported shells in display order.
var Shells = []string{Bash, Zsh, Fish, PowerShell}

// Generate writes the completion script for shell to w.
func Generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case Bash:
		return root.GenBashCompletionV2(w, true)
	case Zsh:
		return root.GenZshCompletion(w)
	case Fish:
		return root.GenFishCompletion(w, true)
	case PowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q: must be one of %s", shell, strings.Join(Shells, ", "))
	}
}
