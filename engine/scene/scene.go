package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/light"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
)

type scene struct {
	mu *sync.RWMutex

	name       string
	background common.Color

	// objects keeps insertion order, which is also draw order.
	objects  []game_object.GameObject
	registry map[uint64]game_object.GameObject

	lights    []light.Light
	lightsBGP bind_group_provider.BindGroupProvider
}

// Scene defines the interface for a container of drawable objects and lights with a background color.
// Scenes hold no GPU state besides the lights uniform provider; the Renderer draws a Scene through a Camera.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Background returns the sRGB color the scene's render target is cleared to.
	//
	// Returns:
	//   - common.Color: the background color
	Background() common.Color

	// SetBackground sets the background color.
	//
	// Parameters:
	//   - c: the new background color
	SetBackground(c common.Color)

	// Add appends an object to the scene. Adding an object twice has no effect.
	//
	// Parameters:
	//   - obj: the object to add
	Add(obj game_object.GameObject)

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Find returns the first object with the given name, or nil.
	//
	// Parameters:
	//   - name: the object name
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Find(name string) game_object.GameObject

	// Remove removes the object with the given ID if present.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Objects returns the scene's objects in draw order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the object list
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Lights returns the scene's lights.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// LightData packs the enabled lights into the lights uniform.
	//
	// Returns:
	//   - []byte: the serialized lights uniform
	LightData() []byte

	// LightBindGroupProvider returns the provider holding the lights uniform (group 1).
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	LightBindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates a new, empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:        &sync.RWMutex{},
		name:      name,
		registry:  make(map[uint64]game_object.GameObject),
		lightsBGP: bind_group_provider.NewBindGroupProvider("lights_" + name),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Add(obj game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(obj)
}

func (s *scene) add(obj game_object.GameObject) {
	if _, ok := s.registry[obj.ID()]; ok {
		return
	}
	s.registry[obj.ID()] = obj
	s.objects = append(s.objects, obj)
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Find(name string) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	for i, obj := range s.objects {
		if obj.ID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) LightData() []byte {
	packed := light.PackLights(s.Lights())
	return packed.Marshal()
}

func (s *scene) LightBindGroupProvider() bind_group_provider.BindGroupProvider {
	return s.lightsBGP
}
