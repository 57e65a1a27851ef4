package core

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// WrapScrollRate is how far (world units per unit of shader time) stars scroll along -X.
	WrapScrollRate = 4.0

	// Drift band: mod(p, 2r) - r*DriftBandShift lands in [-1.2r, 0.8r).
	DriftBandShift = 1.2

	pointSizeScale = 30.0
	twinkleBase    = 3.0
	twinklePhase   = 100.0

	fadeSharpness = 16.0
	fadeEdge      = 0.25
)

// Uniforms mirrors the uniform block consumed by starfield.wgsl.
type Uniforms struct {
	Time          float32
	Fade          float32 // 0 or 1
	Radius        float32
	Direction     mgl32.Vec3
	MovementSpeed float32
}

// OffsetStrategy is the time-driven displacement applied in the vertex stage.
// Apply is the CPU twin of the WGSL entry point named by VertexEntryPoint.
type OffsetStrategy interface {
	Motion() Motion
	VertexEntryPoint() string
	Apply(p mgl32.Vec3, u Uniforms) mgl32.Vec3
}

type WrapOffset struct{}

func (WrapOffset) Motion() Motion           { return MotionWrap }
func (WrapOffset) VertexEntryPoint() string { return "vs_wrap" }

// Apply scrolls X by -time*4 and folds it back into [-radius, radius].
// Values already inside the band, endpoints included, are left alone.
func (WrapOffset) Apply(p mgl32.Vec3, u Uniforms) mgl32.Vec3 {
	x := float64(p.X()) - float64(u.Time)*WrapScrollRate
	r := float64(u.Radius)
	if r > 0 {
		span := 2 * r
		switch {
		case x > r:
			x -= span * math.Ceil((x-r)/span)
		case x < -r:
			x += span * math.Ceil((-r-x)/span)
		}
	}
	return mgl32.Vec3{float32(x), p.Y(), p.Z()}
}

type DriftOffset struct{}

func (DriftOffset) Motion() Motion           { return MotionDrift }
func (DriftOffset) VertexEntryPoint() string { return "vs_drift" }

// Apply moves p along the direction and wraps each axis into [-1.2r, 0.8r).
func (DriftOffset) Apply(p mgl32.Vec3, u Uniforms) mgl32.Vec3 {
	r := float64(u.Radius)
	if r <= 0 {
		return p
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		offset := float64(u.Time) * float64(u.Direction[i]) * float64(u.MovementSpeed)
		out[i] = float32(glslMod(float64(p[i])+offset, 2*r) - r*DriftBandShift)
	}
	return out
}

// StrategyFor maps a Motion to its offset law. Unknown values fall back to wrap.
func StrategyFor(m Motion) OffsetStrategy {
	if parsed, err := ParseMotion(string(m)); err == nil && parsed == MotionDrift {
		return DriftOffset{}
	}
	return WrapOffset{}
}

// glslMod follows GLSL mod(): the result has the sign of y.
func glslMod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// StarFieldMaterial owns the per-frame shader state of one star field.
// Only Time and Fade change after construction.
type StarFieldMaterial struct {
	strategy OffsetStrategy
	uniforms Uniforms
}

func NewStarFieldMaterial(cfg StarFieldConfig) *StarFieldMaterial {
	m := &StarFieldMaterial{
		strategy: StrategyFor(cfg.Motion),
		uniforms: Uniforms{
			Radius: cfg.Radius,
		},
	}
	if m.strategy.Motion() == MotionDrift {
		m.uniforms.Direction = mgl32.Vec3(cfg.Direction)
		m.uniforms.MovementSpeed = cfg.MovementSpeed
	}
	m.SetFade(cfg.Fade)
	return m
}

func (m *StarFieldMaterial) Strategy() OffsetStrategy { return m.strategy }
func (m *StarFieldMaterial) Uniforms() Uniforms       { return m.uniforms }
func (m *StarFieldMaterial) Time() float32            { return m.uniforms.Time }

func (m *StarFieldMaterial) SetTime(t float32) {
	m.uniforms.Time = t
}

// Tick sets the time uniform from the host clock reading.
func (m *StarFieldMaterial) Tick(elapsed time.Duration, speed float32) {
	m.uniforms.Time = float32(elapsed.Seconds() * float64(speed))
}

func (m *StarFieldMaterial) SetFade(on bool) {
	if on {
		m.uniforms.Fade = 1
	} else {
		m.uniforms.Fade = 0
	}
}

func (m *StarFieldMaterial) FadeEnabled() bool { return m.uniforms.Fade == 1 }

// VertexPosition is the object-space position the vertex stage emits for p.
func (m *StarFieldMaterial) VertexPosition(p mgl32.Vec3) mgl32.Vec3 {
	return m.strategy.Apply(p, m.uniforms)
}

// PointSize is the on-screen size in pixels of a star of the given attribute
// size at camera-space depth viewZ (negative in front of the camera).
func PointSize(size, viewZ, t float32) float32 {
	twinkle := twinkleBase + math.Sin(float64(t)+twinklePhase)
	return size * (pointSizeScale / -viewZ) * float32(twinkle)
}

// FragmentOpacity is the alpha of a fragment at pointCoord, where (0.5, 0.5)
// is the centre of the star sprite.
func FragmentOpacity(pointCoord mgl32.Vec2, fade bool) float32 {
	if !fade {
		return 1
	}
	d := float64(pointCoord.Sub(mgl32.Vec2{0.5, 0.5}).Len())
	return float32(1.0 / (1.0 + math.Exp(fadeSharpness*(d-fadeEdge))))
}
