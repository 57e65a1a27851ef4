package core

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// StarLightness is the HSL lightness every star is generated with.
const StarLightness = 0.9

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded source. A zero seed draws one from the wall clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// PointCloud stores flattened per-star attributes, ready for upload.
// Positions and Colors hold 3 floats per star, Sizes one.
type PointCloud struct {
	Count     int
	Positions []float32
	Colors    []float32
	Sizes     []float32
}

func (pc *PointCloud) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{pc.Positions[3*i], pc.Positions[3*i+1], pc.Positions[3*i+2]}
}

func (pc *PointCloud) Color(i int) [3]float32 {
	return [3]float32{pc.Colors[3*i], pc.Colors[3*i+1], pc.Colors[3*i+2]}
}

// PointHue is the hue (0..1) assigned to star i out of count.
func PointHue(i, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(i) / float64(count)
}

// StarColor converts a hue in [0,1) at the given saturation to RGB.
func StarColor(hue float64, saturation float32) [3]float32 {
	c := colorful.Hsl(hue*360.0, float64(saturation), StarLightness)
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// GeneratePointCloud places cfg.Count stars inside the shell
// [cfg.Radius, cfg.Radius+cfg.Depth].
//
// Draw order from src is fixed: all sizes first, then per star the shell
// step, the polar draw and the azimuth draw. The shell radius only ever
// shrinks, by at most depth/count per star, so it never leaves the shell.
func GeneratePointCloud(cfg StarFieldConfig, src RandomSource) *PointCloud {
	n := cfg.Count
	if n < 0 {
		n = 0
	}
	pc := &PointCloud{
		Count:     n,
		Positions: make([]float32, 3*n),
		Colors:    make([]float32, 3*n),
		Sizes:     make([]float32, n),
	}
	if n == 0 {
		return pc
	}

	for i := range pc.Sizes {
		pc.Sizes[i] = (0.5 + 0.5*float32(src.Float64())) * cfg.Factor
	}

	r := float64(cfg.Radius) + float64(cfg.Depth)
	increment := float64(cfg.Depth) / float64(n)
	for i := 0; i < n; i++ {
		r -= increment * src.Float64()
		polar := math.Acos(1 - 2*src.Float64())
		azimuth := 2 * math.Pi * src.Float64()

		p := mgl32.SphericalToCartesian(float32(r), float32(polar), float32(azimuth))
		copy(pc.Positions[3*i:3*i+3], p[:])

		rgb := StarColor(PointHue(i, n), cfg.Saturation)
		copy(pc.Colors[3*i:3*i+3], rgb[:])
	}
	return pc
}
