package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafCommandBuild(t *testing.T) {
	cmd := LeafCommand{
		Use:   "demo",
		Short: "demo command",
		BoolFlags: []BoolFlag{
			{Name: "flag-a", Usage: "a", Default: true},
		},
		StrFlags: []StringFlag{
			{Name: "flag-b", Usage: "b", Default: "x"},
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}.Build()

	a, err := cmd.Flags().GetBool("flag-a")
	require.NoError(t, err)
	assert.True(t, a)

	b, err := cmd.Flags().GetString("flag-b")
	require.NoError(t, err)
	assert.Equal(t, "x", b)
}

func TestGroupCommandBuild(t *testing.T) {
	sub := LeafCommand{Use: "sub", RunE: func(cmd *cobra.Command, args []string) error { return nil }}.Build()
	group := GroupCommand{Use: "group", Subcommands: []*cobra.Command{sub}}.Build()

	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "sub", group.Commands()[0].Use)
}

func TestRootRegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"checkin", "checkout", "status", "log", "edit", "remove",
		"rules", "calc", "target", "export", "import", "config", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout := new(bytes.Buffer)
	versionCmd.SetOut(stdout)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, stdout.String(), "worktime")
}
