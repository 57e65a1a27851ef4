package starfield

import (
	"github.com/gekko3d/starfield/starfieldrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCameraModule installs an orbit camera around the origin, driven by
// left-drag and the scroll wheel.
type OrbitCameraModule struct {
	// Eye overrides the default camera position when non-zero.
	Eye mgl32.Vec3
}

type OrbitCamera struct {
	core.CameraState
}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	cam := &OrbitCamera{CameraState: *core.NewCameraState()}
	if m.Eye != (mgl32.Vec3{}) {
		cam.LookFrom(m.Eye)
	}
	cmd.AddResources(cam)
	ensureResource(app, &Input{})

	app.UseSystem(
		System(OrbitCameraControlSystem).
			InStage(Update),
	)
}

func OrbitCameraControlSystem(cam *OrbitCamera, input *Input) {
	if input.MouseDeltaX != 0 || input.MouseDeltaY != 0 {
		cam.Orbit(float32(input.MouseDeltaX), float32(input.MouseDeltaY))
	}
	if input.ScrollY != 0 {
		cam.Zoom(float32(input.ScrollY))
	}
}
