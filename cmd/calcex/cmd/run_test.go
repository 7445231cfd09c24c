package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandPrintsResult(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "2 + 2"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "4", strings.TrimSpace(out.String()))
}

func TestRunCommandReportsEngineError(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "1 +"})
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestRunCommandRespectsDegreesAngleUnit(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/calcexrc.yaml"
	require.NoError(t, os.WriteFile(path, []byte("angle_unit: degrees\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "run", "sin(90)"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "1", strings.TrimSpace(out.String()))
}
