// Command portal runs the portal viewer: a primary scene with a portal showing a secondary scene,
// swapping to the secondary scene once the animated camera passes through the portal.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-portal/config"
	"github.com/Carmen-Shannon/oxy-portal/engine"
	"github.com/Carmen-Shannon/oxy-portal/engine/debug"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/timeline"
	"github.com/Carmen-Shannon/oxy-portal/engine/window"
	"github.com/Carmen-Shannon/oxy-portal/viewer"
)

func main() {
	configPath := flag.String("config", "", "path to the viewer TOML config (defaults are used when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Printf("[Portal] %v", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
		)),
	)
	win := eng.Window()
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if cfg.Renderer.PresentMode == "uncapped" {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
	defer r.Release()

	// ── Scenes ──────────────────────────────────────────────────────────
	viewport := viewer.Viewport{Width: win.Width(), Height: win.Height()}
	store := viewer.NewStore(
		viewer.WithCameraProjection(cfg.Camera.Fov*math32.Pi/180, cfg.Camera.Near, cfg.Camera.Far),
		viewer.WithCameraPosition(cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]),
		viewer.WithAspect(viewport.Aspect()),
	)

	app, err := viewer.NewApp(r, store, viewport, viewer.WithProfiler(eng.Profiler()))
	if err != nil {
		return err
	}
	defer app.Release()

	// ── Animation ───────────────────────────────────────────────────────
	if cfg.Paths.AnimationProject != "" {
		project, err := timeline.Load(cfg.Paths.AnimationProject)
		if err != nil {
			return err
		}
		x, y, z := store.Camera.Position()
		binder, err := timeline.NewBinder(project, cfg.Animation.Sheet, cfg.Animation.Object,
			timeline.WithDefaults(timeline.CameraValues{Position: timeline.Vec3{X: x, Y: y, Z: z}}),
		)
		if err != nil {
			return err
		}
		binder.OnValuesChange(app.ApplyCameraValues)
		eng.BeforeFrame(func(now time.Duration) {
			binder.Tick(now)
		})
	}

	// ── Debug settings ──────────────────────────────────────────────────
	if cfg.Paths.DebugSettings != "" {
		watcher, err := debug.NewWatcher(cfg.Paths.DebugSettings)
		if err != nil {
			return err
		}
		defer watcher.Close()
		eng.BeforeFrame(func(time.Duration) {
			if s, ok := watcher.Poll(); ok {
				app.ApplySettings(s)
			}
		})
	}

	// ── Loop ────────────────────────────────────────────────────────────
	eng.OnResize(app.OnResize)
	eng.SetFrameCallback(func(now time.Duration) error {
		_, err := app.Frame(now)
		return err
	})
	return eng.Run()
}
