package starfield

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbitCameraModule_DefaultEye(t *testing.T) {
	app := NewAppBuilder().UseModule(OrbitCameraModule{}).Build()

	cam, ok := Resource[OrbitCamera](app)
	require.True(t, ok)
	assert.InDelta(t, 0, cam.Position().Sub(mgl32.Vec3{10, -10, 10}).Len(), 1e-4)
	assert.Equal(t, float32(20), cam.Fov)

	_, ok = Resource[Input](app)
	assert.True(t, ok, "camera installs Input when no window is present")
}

func TestOrbitCameraModule_CustomEye(t *testing.T) {
	app := NewAppBuilder().UseModule(OrbitCameraModule{Eye: mgl32.Vec3{0, -30, 0}}).Build()

	cam, _ := Resource[OrbitCamera](app)
	assert.InDelta(t, 30, cam.Distance, 1e-4)
}

func TestOrbitCameraControlSystem(t *testing.T) {
	app := NewAppBuilder().UseModule(InputModule{}, OrbitCameraModule{}).Build()
	cam, _ := Resource[OrbitCamera](app)
	input, _ := Resource[Input](app)

	yaw, dist := cam.Yaw, cam.Distance

	app.Step()
	assert.Equal(t, yaw, cam.Yaw, "no input, no movement")

	input.MouseDeltaX = 100
	input.ScrollY = 1
	app.Step()
	assert.NotEqual(t, yaw, cam.Yaw)
	assert.Less(t, cam.Distance, dist)
}
