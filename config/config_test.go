package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/config"
	"mathex.dev/calcex/registry"
)

func TestDefaultIsFullPresetRadians(t *testing.T) {
	c := config.Default()
	assert.Equal(t, config.PresetFull, c.Preset)
	assert.Equal(t, registry.Radians, c.Angle())
}

func TestLoadOrDefaultFallsBackWhenFileMissing(t *testing.T) {
	c, err := config.LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calcexrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("angle_unit: degrees\n"), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, registry.Degrees, c.Angle())
	assert.Equal(t, config.PresetFull, c.Preset, "unset preset keeps the default")
	assert.Equal(t, "> ", c.Prompt, "unset prompt keeps the default")
}

func TestRegistryRejectsUnknownPreset(t *testing.T) {
	c := config.Default()
	c.Preset = "nonsense"
	_, err := c.Registry()
	require.Error(t, err)
}

func TestRegistryBuildsBinaryPreset(t *testing.T) {
	c := config.Default()
	c.Preset = config.PresetBinary
	reg, err := c.Registry()
	require.NoError(t, err)
	assert.False(t, reg.IsAlias("sin"), "binary preset has no trig functions")
	assert.True(t, reg.IsAlias("+"))
}
