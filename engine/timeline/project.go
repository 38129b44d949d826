// Package timeline plays keyframed values from a read-only animation project file.
//
// A project holds sheets, a sheet holds objects and an object holds tracks keyed by property path
// ("position.z", "rotation.x"). Tracks are sampled by time in seconds. The file is YAML; JSON
// documents are valid YAML and load unchanged.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Property paths a camera object may animate.
const (
	PositionX = "position.x"
	PositionY = "position.y"
	PositionZ = "position.z"
	RotationX = "rotation.x"
)

var knownTracks = map[string]struct{}{
	PositionX: {},
	PositionY: {},
	PositionZ: {},
	RotationX: {},
}

// ErrNotFound is returned when a sheet or object is missing from a project.
var ErrNotFound = errors.New("not found")

// Easing is the interpolation used from a keyframe to the next one.
type Easing string

const (
	// EasingLinear interpolates linearly to the next keyframe. It is the default.
	EasingLinear Easing = "linear"
	// EasingHold keeps the keyframe value until the next keyframe.
	EasingHold Easing = "hold"
)

// Keyframe is a value at a point in time.
type Keyframe struct {
	Time   float64 `yaml:"time"`
	Value  float64 `yaml:"value"`
	Easing Easing  `yaml:"easing,omitempty"`
}

// Track is a list of keyframes sorted by time.
type Track []Keyframe

// Sample evaluates the track at t seconds. Times before the first keyframe return its value, times
// after the last return the last value.
//
// Parameters:
//   - t: the time in seconds
//
// Returns:
//   - float64: the sampled value, 0 for an empty track
func (tr Track) Sample(t float64) float64 {
	if len(tr) == 0 {
		return 0
	}
	if t <= tr[0].Time {
		return tr[0].Value
	}
	last := tr[len(tr)-1]
	if t >= last.Time {
		return last.Value
	}

	// first keyframe strictly after t
	i := sort.Search(len(tr), func(i int) bool { return tr[i].Time > t })
	from, to := tr[i-1], tr[i]
	if from.Easing == EasingHold || to.Time == from.Time {
		return from.Value
	}
	f := (t - from.Time) / (to.Time - from.Time)
	return from.Value + (to.Value-from.Value)*f
}

// Object is an animated object: a set of tracks keyed by property path.
type Object struct {
	Name   string           `yaml:"name"`
	Tracks map[string]Track `yaml:"tracks"`
}

// Track returns the track for a property path.
//
// Parameters:
//   - path: the property path, e.g. "position.z"
//
// Returns:
//   - Track: the track
//   - bool: false when the object does not animate the property
func (o *Object) Track(path string) (Track, bool) {
	tr, ok := o.Tracks[path]
	return tr, ok && len(tr) > 0
}

// Sheet groups objects that share a clock.
type Sheet struct {
	Name string `yaml:"name"`
	// Loop, when positive, wraps the sheet time every Loop seconds.
	Loop    float64  `yaml:"loop,omitempty"`
	Objects []Object `yaml:"objects"`
}

// Object looks up an object by name.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - *Object: the object
//   - error: an error wrapping ErrNotFound if the sheet has no such object
func (s *Sheet) Object(name string) (*Object, error) {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i], nil
		}
	}
	return nil, fmt.Errorf("object %q in sheet %q: %w", name, s.Name, ErrNotFound)
}

// Time maps an elapsed duration in seconds to sheet time, applying Loop.
//
// Parameters:
//   - elapsed: the elapsed time in seconds
//
// Returns:
//   - float64: the sheet time in seconds
func (s *Sheet) Time(elapsed float64) float64 {
	if s.Loop <= 0 {
		return elapsed
	}
	t := math.Mod(elapsed, s.Loop)
	if t < 0 {
		t += s.Loop
	}
	return t
}

// Project is the parsed animation project. It is not modified after loading.
type Project struct {
	Name   string  `yaml:"name"`
	Sheets []Sheet `yaml:"sheets"`
}

// Sheet looks up a sheet by name.
//
// Parameters:
//   - name: the sheet name
//
// Returns:
//   - *Sheet: the sheet
//   - error: an error wrapping ErrNotFound if the project has no such sheet
func (p *Project) Sheet(name string) (*Sheet, error) {
	for i := range p.Sheets {
		if p.Sheets[i].Name == name {
			return &p.Sheets[i], nil
		}
	}
	return nil, fmt.Errorf("sheet %q: %w", name, ErrNotFound)
}

// Load reads and parses a project file.
//
// Parameters:
//   - path: the project file path
//
// Returns:
//   - *Project: the project
//   - error: an error if the file cannot be read or is invalid
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading animation project: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML or JSON project, sorts every track by time and validates it.
//
// Parameters:
//   - data: the document
//
// Returns:
//   - *Project: the project
//   - error: an error on malformed documents, unknown tracks or easings, or non-finite values
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding animation project: %w", err)
	}

	for si := range p.Sheets {
		sheet := &p.Sheets[si]
		if sheet.Loop < 0 || math.IsNaN(sheet.Loop) || math.IsInf(sheet.Loop, 0) {
			return nil, fmt.Errorf("sheet %q: invalid loop %v", sheet.Name, sheet.Loop)
		}
		for oi := range sheet.Objects {
			obj := &sheet.Objects[oi]
			for path, tr := range obj.Tracks {
				if _, ok := knownTracks[path]; !ok {
					return nil, fmt.Errorf("object %q: unknown track %q", obj.Name, path)
				}
				if err := normalizeTrack(tr); err != nil {
					return nil, fmt.Errorf("object %q track %q: %w", obj.Name, path, err)
				}
			}
		}
	}
	return &p, nil
}

func normalizeTrack(tr Track) error {
	for i := range tr {
		k := &tr[i]
		switch k.Easing {
		case "":
			k.Easing = EasingLinear
		case EasingLinear, EasingHold:
		default:
			return fmt.Errorf("keyframe %d: unknown easing %q", i, k.Easing)
		}
		if !finite(k.Time) || !finite(k.Value) {
			return fmt.Errorf("keyframe %d: non-finite time or value", i)
		}
	}
	sort.SliceStable(tr, func(i, j int) bool { return tr[i].Time < tr[j].Time })
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
