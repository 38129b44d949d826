// Package config loads the viewer configuration from TOML. Every key is optional; missing keys keep
// the values from Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the viewer configuration.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Renderer  RendererConfig  `toml:"renderer"`
	Engine    EngineConfig    `toml:"engine"`
	Paths     PathsConfig     `toml:"paths"`
	Animation AnimationConfig `toml:"animation"`
	Camera    CameraConfig    `toml:"camera"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig configures the GPU renderer.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode"`
	// MSAA is the sample count of depth-tested passes: 1, 4, 8 or 16.
	MSAA          int  `toml:"msaa"`
	ForceSoftware bool `toml:"force_software"`
}

// EngineConfig configures the frame loop.
type EngineConfig struct {
	// FrameLimit caps the frame rate; 0 leaves it uncapped.
	FrameLimit float64 `toml:"frame_limit"`
	Profiling  bool    `toml:"profiling"`
}

// PathsConfig locates the files the viewer reads. Relative paths are resolved against the
// directory of the config file. An empty path disables the feature.
type PathsConfig struct {
	AnimationProject string `toml:"animation_project"`
	DebugSettings    string `toml:"debug_settings"`
}

// AnimationConfig selects the animated object inside the animation project.
type AnimationConfig struct {
	Sheet  string `toml:"sheet"`
	Object string `toml:"object"`
}

// CameraConfig configures the shared perspective camera.
type CameraConfig struct {
	// Fov is the vertical field of view in degrees.
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-portal",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        4,
		},
		Animation: AnimationConfig{
			Sheet:  "Animated scene",
			Object: "Camera",
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{0, 0, 5},
		},
	}
}

// Load reads a TOML file over Default and validates the result.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Paths.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes a TOML document over Default and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the document
//
// Returns:
//   - Config: the configuration
//   - error: an error if the document cannot be decoded or validated
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
//
// Returns:
//   - error: an error wrapping ErrInvalid for the first bad value
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Renderer.PresentMode != "vsync" && c.Renderer.PresentMode != "uncapped":
		return fmt.Errorf("%w: present_mode %q", ErrInvalid, c.Renderer.PresentMode)
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 && c.Renderer.MSAA != 8 && c.Renderer.MSAA != 16:
		return fmt.Errorf("%w: msaa %d", ErrInvalid, c.Renderer.MSAA)
	case c.Engine.FrameLimit < 0:
		return fmt.Errorf("%w: frame_limit %v", ErrInvalid, c.Engine.FrameLimit)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalid, c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	return nil
}

func (p *PathsConfig) resolve(dir string) {
	for _, s := range []*string{&p.AnimationProject, &p.DebugSettings} {
		if *s != "" && !filepath.IsAbs(*s) {
			*s = filepath.Join(dir, *s)
		}
	}
}
