package starfield

import (
	"fmt"
	"image"
	"time"

	"github.com/gekko3d/starfield/starfieldrt/rt/preview"

	"github.com/benbjohnson/clock"
)

// NewWindowedApp assembles the interactive viewer for cfg with one star
// field mounted. A positive lifetime unmounts the field after that long.
func NewWindowedApp(cfg Config, lifetime time.Duration) *App {
	app := NewAppBuilder().
		UseModule(
			LoggingModule{Prefix: cfg.Logging.Prefix, Debug: cfg.Logging.Debug},
			TimeModule{},
			StarFieldModule{},
			LifecycleModule{},
			OrbitCameraModule{},
			AxesHelperModule{Hidden: !cfg.Window.Axes},
			ClientModule{
				WindowWidth:  cfg.Window.Width,
				WindowHeight: cfg.Window.Height,
				WindowTitle:  cfg.Window.Title,
			},
		).
		Build()

	components := []any{NewStarField(WithConfig(cfg.StarField))}
	if lifetime > 0 {
		components = append(components, LifetimeComponent{TimeLeft: lifetime})
	}
	app.Commands().AddEntity(components...)
	return app
}

// Snapshot renders the frame at time at without a window or GPU and writes
// it to path as PNG.
func Snapshot(cfg Config, at time.Duration, path string) error {
	mock := clock.NewMock()
	app := NewAppBuilder().
		UseModule(
			LoggingModule{Prefix: cfg.Logging.Prefix, Debug: cfg.Logging.Debug},
			TimeModule{Clock: mock},
			StarFieldModule{},
			OrbitCameraModule{},
		).
		Build()
	defer app.Shutdown()

	app.Commands().AddEntity(NewStarField(WithConfig(cfg.StarField)))
	mock.Add(at)
	app.Step()

	img, err := SnapshotImage(app, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	if err := preview.WritePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	app.Logger().Infof("wrote %dx%d snapshot at t=%s to %s", cfg.Window.Width, cfg.Window.Height, at, path)
	return nil
}

// SnapshotImage rasterizes the app's current frame on the CPU.
func SnapshotImage(app *App, width, height int) (*image.RGBA, error) {
	fields, ok := Resource[StarFields](app)
	if !ok {
		return nil, fmt.Errorf("snapshot: StarFieldModule is not installed")
	}
	cam, ok := Resource[OrbitCamera](app)
	if !ok {
		return nil, fmt.Errorf("snapshot: OrbitCameraModule is not installed")
	}

	var layers []preview.Field
	fields.Each(func(m *MountedStarField) {
		layers = append(layers, preview.Field{Cloud: m.Cloud, Material: m.Material})
	})
	return preview.Render(layers, &cam.CameraState, width, height), nil
}
