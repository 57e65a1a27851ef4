package core

import "github.com/go-gl/mathgl/mgl32"

// AxisLine is one colored segment of an axes helper.
type AxisLine struct {
	From, To mgl32.Vec3
	Color    [3]float32
}

// AxesLines returns the X, Y and Z axes from the origin, colored red, green
// and blue. A non-positive size falls back to 1.
func AxesLines(size float32) []AxisLine {
	if size <= 0 {
		size = 1
	}
	return []AxisLine{
		{To: mgl32.Vec3{size, 0, 0}, Color: [3]float32{1, 0, 0}},
		{To: mgl32.Vec3{0, size, 0}, Color: [3]float32{0, 1, 0}},
		{To: mgl32.Vec3{0, 0, size}, Color: [3]float32{0, 0, 1}},
	}
}
