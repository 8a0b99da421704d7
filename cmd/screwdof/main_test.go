package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func testdata(name string) string {
	return filepath.Join("..", "..", "mechfile", "testdata", name)
}

func TestAnalyze_Text(t *testing.T) {
	out, err := run(t, "analyze", testdata("fourbar.yaml"), testdata("wrist.yaml"), "--jobs", "2")
	require.NoError(t, err)

	four := strings.Index(out, "Mobility report: planar four-bar")
	wrist := strings.Index(out, "Mobility report: wrist")
	require.GreaterOrEqual(t, four, 0)
	require.GreaterOrEqual(t, wrist, 0)
	assert.Less(t, four, wrist, "reports follow argument order")
	assert.Contains(t, out, "Planar")
	assert.Contains(t, out, "Spherical")
}

func TestAnalyze_YAML(t *testing.T) {
	out, err := run(t, "analyze", "-f", "yaml", testdata("extended.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "name: extended")
	assert.Contains(t, out, "dof: 1")
	assert.Contains(t, out, "motion_type: Planar")
}

func TestAnalyze_PartialFailure(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("nodes: ["), 0o600))

	out, err := run(t, "analyze", testdata("fourbar.yaml"), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 analyses failed")
	assert.Contains(t, out, "Mobility report: planar four-bar")
	assert.Contains(t, out, "analysis aborted")
}

func TestAnalyze_Flags(t *testing.T) {
	_, err := run(t, "analyze", "--format", "xml", testdata("fourbar.yaml"))
	assert.ErrorContains(t, err, "unknown --format")

	// an impossible gap requirement locks the four-bar
	out, err := run(t, "analyze", "--gap-threshold", "1e300", testdata("fourbar.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed")

	_, err = run(t, "analyze", "--zero-tol", "-1", testdata("fourbar.yaml"))
	assert.Error(t, err)
}

func TestSpectrumCmd(t *testing.T) {
	out, err := run(t, "spectrum", testdata("fourbar.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "(MAX GAP)")
	assert.NotContains(t, out, "Mobility report")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "screwdof dev\n", out)
}
