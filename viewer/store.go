package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/light"
	"github.com/Carmen-Shannon/oxy-portal/engine/model"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
)

var (
	primaryBackground   = common.MustParseColor("#75D963")
	secondaryBackground = common.MustParseColor("#75CAFF")
	groundColor         = common.MustParseColor("#99d98c")
	ground2Color        = common.MustParseColor("skyblue")
	backgroundColor     = common.MustParseColor("#b5e48c")
	white               = common.MustParseColor("white")
)

// sphereOffset is how far in front of the camera the spheres are kept.
const sphereOffset float32 = 8

// Store owns everything the viewer draws. It is built once at startup; neither scene is ever
// recreated.
type Store struct {
	// Camera renders both scenes.
	Camera camera.Camera
	// SecondaryCamera is configured like Camera at startup and never synced afterwards. The frame
	// driver does not use it.
	SecondaryCamera camera.Camera

	Primary   scene.Scene
	Secondary scene.Scene

	// Portal is the material of PortalObject, fed the offscreen texture every frame.
	Portal portal.Surface

	Ground           game_object.GameObject
	Sphere           game_object.GameObject
	PortalObject     game_object.GameObject
	BackgroundSphere game_object.GameObject
	Ground2          game_object.GameObject
	Sphere2          game_object.GameObject
}

type storeConfig struct {
	fov, near, far float32
	position       [3]float32
	aspect         float32
	workers        int
}

// NewStore builds the two scenes, their content and the cameras. Mesh generation runs on a worker
// pool and completes before NewStore returns.
//
// Parameters:
//   - options: variadic list of StoreBuilderOption functions
//
// Returns:
//   - *Store: the store
func NewStore(options ...StoreBuilderOption) *Store {
	cfg := storeConfig{
		fov:      75 * (math32.Pi / 180),
		near:     0.1,
		far:      100,
		position: [3]float32{0, 0, 5},
		aspect:   1,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	newCamera := func() camera.Camera {
		return camera.NewCamera(
			camera.WithFov(cfg.fov),
			camera.WithNear(cfg.near),
			camera.WithFar(cfg.far),
			camera.WithAspect(cfg.aspect),
			camera.WithPosition(cfg.position[0], cfg.position[1], cfg.position[2]),
		)
	}

	models := model.BuildModels([]model.GeometrySpec{
		{Name: "ground", Build: func() model.Geometry { return model.Circle(5, 48) }},
		{Name: "sphere", Build: func() model.Geometry { return model.Sphere(1, 64, 64) }},
		{Name: "portal", Build: func() model.Geometry { return model.Circle(3, 64) }},
		{Name: "background_sphere", Build: func() model.Geometry { return model.Sphere(20, 64, 64) }},
		{Name: "ground2", Build: func() model.Geometry { return model.Circle(5, 48) }},
	}, cfg.workers)
	groundModel, sphereModel, portalModel, bgModel, ground2Model := models[0], models[1], models[2], models[3], models[4]

	s := &Store{
		Camera:          newCamera(),
		SecondaryCamera: newCamera(),
		Portal:          portal.NewSurface(),
	}

	s.Ground = game_object.NewGameObject(
		game_object.WithName("ground"),
		game_object.WithModel(groundModel),
		game_object.WithMaterial(material.NewStandard(material.WithName("ground"), material.WithColor(groundColor))),
		game_object.WithPosition(0, -1, 0),
		game_object.WithRotation(-math32.Pi/2, 0, 0),
	)
	s.Sphere = game_object.NewGameObject(
		game_object.WithName("sphere"),
		game_object.WithModel(sphereModel),
		game_object.WithMaterial(material.NewStandard(material.WithName("sphere"), material.WithColor(groundColor))),
	)
	s.PortalObject = game_object.NewGameObject(
		game_object.WithName("portal"),
		game_object.WithModel(portalModel),
		game_object.WithMaterial(s.Portal),
		game_object.WithPosition(0, 1, -5),
	)
	s.BackgroundSphere = game_object.NewGameObject(
		game_object.WithName("background_sphere"),
		game_object.WithModel(bgModel),
		game_object.WithMaterial(material.NewBasic(
			material.WithName("background_sphere"),
			material.WithColor(backgroundColor),
			material.WithSide(material.SideBack),
		)),
		game_object.WithEnabled(false),
	)
	s.Ground2 = game_object.NewGameObject(
		game_object.WithName("ground2"),
		game_object.WithModel(ground2Model),
		game_object.WithMaterial(material.NewStandard(material.WithName("ground2"), material.WithColor(ground2Color))),
		game_object.WithPosition(0, -1, -20),
		game_object.WithRotation(-math32.Pi/2, 0, 0),
	)
	s.Sphere2 = s.Sphere.Clone("sphere2")

	s.Primary = scene.NewScene("primary",
		scene.WithBackground(primaryBackground),
		scene.WithObjects(s.Ground, s.Sphere, s.BackgroundSphere, s.PortalObject),
		scene.WithLights(sceneLights()...),
	)
	s.Secondary = scene.NewScene("secondary",
		scene.WithBackground(secondaryBackground),
		scene.WithObjects(s.Ground2, s.Sphere2),
		scene.WithLights(sceneLights()...),
	)
	return s
}

// Scene returns the scene with the given ID.
//
// Parameters:
//   - id: the scene ID
//
// Returns:
//   - scene.Scene: the scene, Primary for unknown IDs
func (s *Store) Scene(id SceneID) scene.Scene {
	if id == SceneSecondary {
		return s.Secondary
	}
	return s.Primary
}

// sceneLights creates the lights each scene owns: a shadow-casting directional light and an ambient light.
func sceneLights() []light.Light {
	return []light.Light{
		light.NewLight(light.LightTypeDirectional,
			light.WithPosition(1.76, 2.26, 2.38),
			light.WithColor(white),
			light.WithIntensity(1),
			light.WithCastsShadows(true),
		),
		light.NewLight(light.LightTypeAmbient,
			light.WithColor(white),
			light.WithIntensity(1),
		),
	}
}
