package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0rsy/cpp-transport-catalogue/internal/config"
)

func TestLoadMissingPathReturnsEmptyFile(t *testing.T) {
	f, err := config.Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, f.RenderSettings)
	assert.Nil(t, f.RoutingSettings)
}

func TestLoadEmptyPathIsNoOp(t *testing.T) {
	f, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.File{}, f)
}

func TestLoadParsesRenderAndRoutingSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
render_settings:
  width: 800
  height: 600
  padding: 20
  color_palette: ["red", "green"]
  font_family: "Arial"
routing_settings:
  bus_wait_time: 5
  bus_velocity: 40
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	f, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.RenderSettings)
	require.NotNil(t, f.RoutingSettings)
	assert.Equal(t, 800.0, f.RenderSettings.Width)
	assert.Equal(t, []string{"red", "green"}, f.RenderSettings.ColorPalette)
	assert.Equal(t, 5, f.RoutingSettings.BusWaitTimeMin)
	assert.Equal(t, 40.0, f.RoutingSettings.BusVelocityKMH)

	defaults := f.Defaults()
	require.NotNil(t, defaults.RenderSettings)
	require.NotNil(t, defaults.RoutingSettings)
	assert.Equal(t, "Arial", defaults.RenderSettings.FontFamily)
	assert.Equal(t, 40.0, defaults.RoutingSettings.BusVelocityKMH)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
