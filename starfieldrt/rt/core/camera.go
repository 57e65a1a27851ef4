package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraState is an orbit camera around Target. Z is up.
type CameraState struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // radians, around Z
	Pitch    float32 // radians, above the XY plane

	Fov  float32 // vertical, degrees
	Near float32
	Far  float32

	Sensitivity float32
	ZoomFactor  float32
	MinDistance float32
	MaxDistance float32
}

func NewCameraState() *CameraState {
	c := &CameraState{
		Fov:         20,
		Near:        0.1,
		Far:         2000,
		Sensitivity: 0.005,
		ZoomFactor:  1.1,
		MinDistance: 1,
		MaxDistance: 1500,
	}
	c.LookFrom(mgl32.Vec3{10, -10, 10})
	return c
}

// LookFrom places the camera at eye, keeping the current target.
func (c *CameraState) LookFrom(eye mgl32.Vec3) {
	d := eye.Sub(c.Target)
	c.Distance = d.Len()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		d = mgl32.Vec3{c.Distance, 0, 0}
	}
	c.Yaw = float32(math.Atan2(float64(d.Y()), float64(d.X())))
	c.Pitch = float32(math.Asin(float64(d.Z() / c.Distance)))
}

func (c *CameraState) Position() mgl32.Vec3 {
	cp, sp := math.Cos(float64(c.Pitch)), math.Sin(float64(c.Pitch))
	cy, sy := math.Cos(float64(c.Yaw)), math.Sin(float64(c.Yaw))
	offset := mgl32.Vec3{float32(cp * cy), float32(cp * sy), float32(sp)}.Mul(c.Distance)
	return c.Target.Add(offset)
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 0, 1})
}

func (c *CameraState) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// Orbit rotates around the target by a mouse delta in pixels.
func (c *CameraState) Orbit(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity

	limit := float32(math.Pi/2) - 0.01
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

// Zoom moves toward (steps > 0) or away from the target.
func (c *CameraState) Zoom(steps float32) {
	c.Distance /= float32(math.Pow(float64(c.ZoomFactor), float64(steps)))
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
