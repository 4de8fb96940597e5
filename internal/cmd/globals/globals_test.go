package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/pkg/errors"
)

func TestParseWalksToRoot(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().String("format", "", "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("no-color", false, "")
	child := &cobra.Command{Use: "child"}
	root.AddCommand(child)

	require.NoError(t, root.PersistentFlags().Set("format", "json"))
	require.NoError(t, root.PersistentFlags().Set("quiet", "true"))

	flags, err := Parse(child)
	require.NoError(t, err)
	assert.Equal(t, "json", flags.Format)
	assert.True(t, flags.Quiet)
	assert.False(t, flags.Verbose)
}

func TestMenuFlagsPrice(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	flags := AddMenuFlags(cmd)

	d, err := flags.Price()
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	require.NoError(t, cmd.Flags().Set("max-price", "9.50"))
	d, err = flags.Price()
	require.NoError(t, err)
	assert.Equal(t, "9.5", d.String())

	require.NoError(t, cmd.Flags().Set("max-price", "cheap"))
	_, err = flags.Price()
	assert.True(t, errors.IsValidationError(err))

	require.NoError(t, cmd.Flags().Set("max-price", "-1"))
	_, err = flags.Price()
	assert.True(t, errors.IsValidationError(err))
}
