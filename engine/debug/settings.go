// Package debug exposes live-tunable viewer settings read from a TOML file that is watched for
// changes while the viewer runs.
package debug

import (
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/pelletier/go-toml/v2"
)

// Settings are the tunables of the debug panel. None of them affect frame ordering.
type Settings struct {
	// Exposure is the output pass exposure multiplier.
	Exposure float32 `toml:"exposure"`
	// BackgroundSphere shows the large back-faced sphere around the primary scene.
	BackgroundSphere bool `toml:"background_sphere"`
	// Profiler, when set, toggles periodic profiler reports. Nil leaves the engine configuration in charge.
	Profiler *bool `toml:"profiler,omitempty"`
	// PrimaryBackground is the clear color of the primary scene.
	PrimaryBackground common.Color `toml:"primary_background"`
	// SecondaryBackground is the clear color of the secondary scene.
	SecondaryBackground common.Color `toml:"secondary_background"`
}

// DefaultSettings returns the settings used for keys missing from the file.
func DefaultSettings() Settings {
	return Settings{
		Exposure:            1,
		PrimaryBackground:   common.ColorFromHex(0x75d963),
		SecondaryBackground: common.ColorFromHex(0x75caff),
	}
}

// ParseSettings decodes a TOML document over DefaultSettings.
//
// Parameters:
//   - data: the document
//
// Returns:
//   - Settings: the settings
//   - error: an error on malformed TOML, unknown colors or a negative or non-finite exposure
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decoding debug settings: %w", err)
	}
	e := float64(s.Exposure)
	if e < 0 || math.IsNaN(e) || math.IsInf(e, 0) {
		return Settings{}, fmt.Errorf("invalid exposure %v", s.Exposure)
	}
	return s, nil
}

// LoadSettings reads and parses a settings file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Settings: the settings
//   - error: an error if the file cannot be read or parsed
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading debug settings: %w", err)
	}
	return ParseSettings(data)
}
