package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{0, 0, 5}, cfg.Camera.Position)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
}

func TestParse_Overrides(t *testing.T) {
	doc := `
[window]
title = "portal"
width = 800

[renderer]
present_mode = "uncapped"
msaa = 1

[engine]
frame_limit = 30
profiling = true

[camera]
fov = 60
position = [1, 2, 3]
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "portal", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, 30.0, cfg.Engine.FrameLimit)
	assert.True(t, cfg.Engine.Profiling)
	assert.Equal(t, float32(60), cfg.Camera.Fov)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "[window"},
		{name: "unknown key", doc: "[window]\ncolour = 1"},
		{name: "zero width", doc: "[window]\nwidth = 0"},
		{name: "present mode", doc: "[renderer]\npresent_mode = \"mailbox\""},
		{name: "msaa", doc: "[renderer]\nmsaa = 3"},
		{name: "frame limit", doc: "[engine]\nframe_limit = -1"},
		{name: "fov", doc: "[camera]\nfov = 180"},
		{name: "far before near", doc: "[camera]\nnear = 5\nfar = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("[camera]\nnear = 0"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.toml")
	doc := "[paths]\nanimation_project = \"project.yaml\"\ndebug_settings = \"/etc/debug.toml\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project.yaml"), cfg.Paths.AnimationProject)
	assert.Equal(t, "/etc/debug.toml", cfg.Paths.DebugSettings)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "assets", "portal.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "assets", "project.yaml"), cfg.Paths.AnimationProject)
	assert.Equal(t, "Camera", cfg.Animation.Object)
}
