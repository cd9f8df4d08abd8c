package octconnect

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeArgs(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{cobra.ShellCompRequestCmd}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCompletion_PathFlagCompletesDirectories(t *testing.T) {
	out := completeArgs(t, "scan", "--path", "")
	assert.Contains(t, out, ":16")
}

func TestCompletion_BakeFileCompletesYAML(t *testing.T) {
	out := completeArgs(t, "bake", "--file", "")
	assert.Contains(t, out, "yaml\n")
	assert.Contains(t, out, "yml\n")
	assert.Contains(t, out, ":8")
}

func TestCompletion_Script(t *testing.T) {
	var out bytes.Buffer
	c, _, err := rootCmd.Find([]string{"completion"})
	require.NoError(t, err)
	c.SetOut(&out)
	t.Cleanup(func() { c.SetOut(nil) })
	require.NoError(t, c.RunE(c, []string{"bash"}))
	assert.Contains(t, out.String(), "octconnect")
	assert.Error(t, c.RunE(c, []string{"tcsh"}))
}
