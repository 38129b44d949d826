package timeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/copier"
)

// Vec3 is a position triple.
type Vec3 struct {
	X, Y, Z float32
}

// Euler holds the animated rotation components.
type Euler struct {
	X float32
}

// CameraValues is the camera state produced by the binder.
type CameraValues struct {
	Position Vec3
	Rotation Euler
}

type binder struct {
	mu sync.Mutex

	// sheet carries the clock settings only; object is a deep copy of the bound object.
	sheet  Sheet
	object Object

	defaults CameraValues
	last     CameraValues
	ticked   bool

	onChange []func(CameraValues)
}

// Binder samples one animated object each tick and reports camera values when they change.
type Binder interface {
	// OnValuesChange registers a callback receiving the values after every tick that changed them.
	// The first tick always reports.
	//
	// Parameters:
	//   - fn: the callback
	OnValuesChange(fn func(CameraValues))

	// Tick samples the object at the elapsed time.
	//
	// Parameters:
	//   - elapsed: time since playback started
	//
	// Returns:
	//   - bool: true when the callbacks fired
	Tick(elapsed time.Duration) bool

	// Values samples the object without notifying callbacks.
	//
	// Parameters:
	//   - elapsed: time since playback started
	//
	// Returns:
	//   - CameraValues: the sampled values
	Values(elapsed time.Duration) CameraValues
}

var _ Binder = &binder{}

// NewBinder binds an object of a project sheet. Properties without a track keep the default values.
// The binder keeps its own copy of the object's tracks, so later edits to the project do not reach it.
//
// Parameters:
//   - p: the project
//   - sheet: the sheet name
//   - object: the object name
//   - options: variadic list of BinderBuilderOption functions
//
// Returns:
//   - Binder: the binder
//   - error: an error wrapping ErrNotFound if the sheet or object is missing, or a copy error
func NewBinder(p *Project, sheet, object string, options ...BinderBuilderOption) (Binder, error) {
	s, err := p.Sheet(sheet)
	if err != nil {
		return nil, err
	}
	o, err := s.Object(object)
	if err != nil {
		return nil, err
	}
	b := &binder{
		sheet:    Sheet{Name: s.Name, Loop: s.Loop},
		defaults: CameraValues{Position: Vec3{Z: 5}},
	}
	if err := copier.CopyWithOption(&b.object, o, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copying object %q: %w", object, err)
	}
	for _, opt := range options {
		opt(b)
	}
	return b, nil
}

func (b *binder) OnValuesChange(fn func(CameraValues)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

func (b *binder) Values(elapsed time.Duration) CameraValues {
	t := b.sheet.Time(elapsed.Seconds())
	v := b.defaults
	sample := func(path string, dst *float32) {
		if tr, ok := b.object.Track(path); ok {
			*dst = float32(tr.Sample(t))
		}
	}
	sample(PositionX, &v.Position.X)
	sample(PositionY, &v.Position.Y)
	sample(PositionZ, &v.Position.Z)
	sample(RotationX, &v.Rotation.X)
	return v
}

func (b *binder) Tick(elapsed time.Duration) bool {
	v := b.Values(elapsed)

	b.mu.Lock()
	if b.ticked && v == b.last {
		b.mu.Unlock()
		return false
	}
	b.ticked = true
	b.last = v
	callbacks := make([]func(CameraValues), len(b.onChange))
	copy(callbacks, b.onChange)
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn(v)
	}
	return true
}
