package gpu

import (
	"testing"
	"unsafe"

	"github.com/gekko3d/starfield/starfieldrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutSizesMatchWGSL(t *testing.T) {
	assert.Equal(t, uint64(32), starInstanceSize)
	assert.Equal(t, uint64(32), starUniformsSize)
	assert.Equal(t, uint64(144), cameraUniformsSize)

	assert.Equal(t, uintptr(12), unsafe.Offsetof(StarInstance{}.Size))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(StarInstance{}.Color))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(StarUniforms{}.Time))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(StarUniforms{}.Fade))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(CameraUniforms{}.Viewport))
}

func TestPackInstances(t *testing.T) {
	cfg := core.DefaultStarFieldConfig()
	cfg.Count = 3
	cfg.Saturation = 1
	pc := core.GeneratePointCloud(cfg, core.NewRandomSource(8))

	inst := PackInstances(pc)
	require.Len(t, inst, 3)
	for i, s := range inst {
		assert.Equal(t, [3]float32(pc.Position(i)), s.Pos)
		assert.Equal(t, pc.Sizes[i], s.Size)
		c := pc.Color(i)
		assert.Equal(t, [4]float32{c[0], c[1], c[2], 1}, s.Color)
	}

	assert.Empty(t, PackInstances(&core.PointCloud{}))
	assert.Len(t, sliceBytes(inst), 3*32)
	assert.Nil(t, sliceBytes([]StarInstance{}))
}

func TestPackUniforms(t *testing.T) {
	u := core.Uniforms{Time: 2, Fade: 1, Radius: 100, Direction: mgl32.Vec3{0, 1, 0}, MovementSpeed: 3}
	p := PackUniforms(u)
	assert.Equal(t, [3]float32{0, 1, 0}, p.Direction)
	assert.Equal(t, float32(2), p.Time)
	assert.Equal(t, float32(100), p.Radius)
	assert.Equal(t, float32(3), p.MovementSpeed)
	assert.Equal(t, float32(1), p.Fade)
	assert.Len(t, asBytes(&p), 32)
}

func TestPackCamera(t *testing.T) {
	c := PackCamera(mgl32.Ident4(), mgl32.Ident4(), 1280, 720)
	assert.Equal(t, [2]float32{1280, 720}, c.Viewport)
	assert.Len(t, asBytes(&c), 144)
}

func TestPackAxes(t *testing.T) {
	assert.Equal(t, uint64(28), axesVertexSize)

	verts := PackAxes(core.AxesLines(2))
	require.Len(t, verts, 6)
	assert.Equal(t, [3]float32{0, 0, 0}, verts[0].Pos)
	assert.Equal(t, [3]float32{2, 0, 0}, verts[1].Pos)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, verts[1].Color)
	assert.Equal(t, [3]float32{0, 0, 2}, verts[5].Pos)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, verts[5].Color)
}
