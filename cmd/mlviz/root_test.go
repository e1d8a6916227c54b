package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyConfig = `
curves:
  cases:
    - name: Only
      separation: 2
      n: 500
      positive_rate: 0.3
      seed: 5
`

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_CurvesFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mlviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tinyConfig), 0o644))

	stdout, stderr, err := runRoot(t, "--config", path, "curves", "--no-figure", "--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, stdout, "name: Only")
	assert.Contains(t, stdout, "average_precision:")
	assert.Contains(t, stderr, "curves built")
}

func TestRootCommand_Activations(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gallery.png")

	_, stderr, err := runRoot(t, "activations", "--out", out, "--dpi", "10", "--points", "40")
	require.NoError(t, err)

	assert.FileExists(t, out)
	assert.Contains(t, stderr, "saved figure")
}

func TestRootCommand_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  foreground: nope\n"), 0o644))

	_, _, err := runRoot(t, "--config", path, "curves", "--no-figure")
	assert.ErrorContains(t, err, "loading configuration")
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	_, _, err := runRoot(t, "curves", "extra")
	assert.Error(t, err)
}
