package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraState_DefaultPosition(t *testing.T) {
	c := NewCameraState()
	pos := c.Position()
	assert.InDeltaSlice(t, []float32{10, -10, 10}, pos[:], 1e-4)
	assert.Equal(t, float32(20), c.Fov)
}

func TestCameraState_ViewLooksAtTarget(t *testing.T) {
	c := NewCameraState()
	target := c.GetViewMatrix().Mul4x1(c.Target.Vec4(1))
	assert.InDelta(t, 0.0, target.X(), 1e-4)
	assert.InDelta(t, 0.0, target.Y(), 1e-4)
	assert.InDelta(t, -c.Distance, target.Z(), 1e-3)
}

func TestCameraState_OrbitClampsPitch(t *testing.T) {
	c := NewCameraState()
	c.Orbit(0, 1e6)
	assert.Less(t, c.Pitch, float32(1.5708))
	c.Orbit(0, -2e6)
	assert.Greater(t, c.Pitch, float32(-1.5708))
}

func TestCameraState_Zoom(t *testing.T) {
	c := NewCameraState()
	d := c.Distance
	c.Zoom(1)
	assert.InDelta(t, d/1.1, c.Distance, 1e-4)

	c.Zoom(1000)
	assert.Equal(t, c.MinDistance, c.Distance)
	c.Zoom(-1000)
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestCameraState_LookFromTarget(t *testing.T) {
	c := NewCameraState()
	c.LookFrom(mgl32.Vec3{})
	assert.Equal(t, c.MinDistance, c.Distance)
}
