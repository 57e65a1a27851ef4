package gpu

import (
	"unsafe"

	"github.com/gekko3d/starfield/starfieldrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// StarInstance matches StarInput in starfield.wgsl
// struct { vec3 position; f32 size; vec4 color; }
type StarInstance struct {
	Pos   [3]float32
	Size  float32
	Color [4]float32
}

// StarUniforms matches the Stars uniform block (32 bytes).
type StarUniforms struct {
	Direction     [3]float32
	Time          float32
	Radius        float32
	MovementSpeed float32
	Fade          float32
	_             float32
}

// CameraUniforms matches the Camera uniform block (144 bytes).
type CameraUniforms struct {
	View     mgl32.Mat4
	Proj     mgl32.Mat4
	Viewport [2]float32
	_        [2]float32
}

const (
	starInstanceSize   = uint64(unsafe.Sizeof(StarInstance{}))
	starUniformsSize   = uint64(unsafe.Sizeof(StarUniforms{}))
	cameraUniformsSize = uint64(unsafe.Sizeof(CameraUniforms{}))
)

// PackInstances interleaves the point cloud into one instance per star.
func PackInstances(pc *core.PointCloud) []StarInstance {
	out := make([]StarInstance, pc.Count)
	for i := range out {
		c := pc.Color(i)
		out[i] = StarInstance{
			Pos:   [3]float32(pc.Position(i)),
			Size:  pc.Sizes[i],
			Color: [4]float32{c[0], c[1], c[2], 1},
		}
	}
	return out
}

func PackUniforms(u core.Uniforms) StarUniforms {
	return StarUniforms{
		Direction:     [3]float32(u.Direction),
		Time:          u.Time,
		Radius:        u.Radius,
		MovementSpeed: u.MovementSpeed,
		Fade:          u.Fade,
	}
}

func PackCamera(view, proj mgl32.Mat4, width, height uint32) CameraUniforms {
	return CameraUniforms{
		View:     view,
		Proj:     proj,
		Viewport: [2]float32{float32(width), float32(height)},
	}
}

func asBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
