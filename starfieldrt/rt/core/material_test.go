package core

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, "vs_wrap", StrategyFor(MotionWrap).VertexEntryPoint())
	assert.Equal(t, "vs_drift", StrategyFor(MotionDrift).VertexEntryPoint())
	assert.Equal(t, MotionWrap, StrategyFor("bogus").Motion())
	assert.Equal(t, MotionDrift, StrategyFor("Drift").Motion())
}

func TestWrapOffset_StaysWithinRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const r = 100
	for i := 0; i < 10000; i++ {
		p := mgl32.Vec3{float32(rng.Float64()*400 - 200), 1, 2}
		tm := float32(rng.Float64() * 1e5)
		out := WrapOffset{}.Apply(p, Uniforms{Time: tm, Radius: r})

		if out.X() < -r || out.X() > r {
			t.Fatalf("x=%f time=%f wrapped to %f, outside [-%d, %d]", p.X(), tm, out.X(), r, r)
		}
		assert.Equal(t, p.Y(), out.Y())
		assert.Equal(t, p.Z(), out.Z())
	}
}

func TestWrapOffset_MatchesSingleShift(t *testing.T) {
	u := Uniforms{Radius: 100}

	assert.InDelta(t, 95.0, WrapOffset{}.Apply(mgl32.Vec3{95, 0, 0}, u).X(), 1e-4)

	u.Time = 1
	// -99 - 4 = -103 leaves the band and comes back on the positive side.
	assert.InDelta(t, 97.0, WrapOffset{}.Apply(mgl32.Vec3{-99, 0, 0}, u).X(), 1e-4)
	assert.InDelta(t, 46.0, WrapOffset{}.Apply(mgl32.Vec3{50, 0, 0}, u).X(), 1e-4)
}

func TestWrapOffset_KeepsBandEdges(t *testing.T) {
	u := Uniforms{Radius: 100}
	assert.Equal(t, float32(100), WrapOffset{}.Apply(mgl32.Vec3{100, 0, 0}, u).X())
	assert.Equal(t, float32(-100), WrapOffset{}.Apply(mgl32.Vec3{-100, 0, 0}, u).X())

	// Just past either edge reappears on the other side.
	assert.InDelta(t, -99.0, WrapOffset{}.Apply(mgl32.Vec3{101, 0, 0}, u).X(), 1e-4)
	assert.InDelta(t, 99.0, WrapOffset{}.Apply(mgl32.Vec3{-101, 0, 0}, u).X(), 1e-4)
	// Several periods away still lands inside the band.
	assert.InDelta(t, 10.0, WrapOffset{}.Apply(mgl32.Vec3{610, 0, 0}, u).X(), 1e-4)
}

func TestOffsets_NonPositiveRadiusSkipsWrapping(t *testing.T) {
	p := mgl32.Vec3{3, 4, 5}
	u := Uniforms{Time: 2, Radius: 0, Direction: mgl32.Vec3{1, 1, 1}, MovementSpeed: 1}
	assert.Equal(t, mgl32.Vec3{-5, 4, 5}, WrapOffset{}.Apply(p, u))
	assert.Equal(t, p, DriftOffset{}.Apply(p, u))
}

func TestMotion_UnmarshalText(t *testing.T) {
	var m Motion
	assert.NoError(t, m.UnmarshalText([]byte("DRIFT")))
	assert.Equal(t, MotionDrift, m)
	assert.NoError(t, m.UnmarshalText([]byte("")))
	assert.Equal(t, MotionWrap, m)
	assert.Error(t, m.UnmarshalText([]byte("spin")))
}

func TestDriftOffset_StaysInBand(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const r = 50
	lo, hi := float32(-r*1.2), float32(r*0.8)
	for i := 0; i < 10000; i++ {
		p := mgl32.Vec3{
			float32(rng.Float64()*300 - 150),
			float32(rng.Float64()*300 - 150),
			float32(rng.Float64()*300 - 150),
		}
		u := Uniforms{
			Time:          float32(rng.Float64() * 1e6),
			Radius:        r,
			Direction:     mgl32.Vec3{float32(rng.NormFloat64()), float32(rng.NormFloat64()), float32(rng.NormFloat64())},
			MovementSpeed: float32(rng.Float64() * 10),
		}
		out := DriftOffset{}.Apply(p, u)
		for axis := 0; axis < 3; axis++ {
			if out[axis] < lo || out[axis] > hi {
				t.Fatalf("axis %d of %v escaped band: %f", axis, p, out[axis])
			}
		}
	}
}

func TestDriftOffset_LiteralConstants(t *testing.T) {
	u := Uniforms{Radius: 10}
	out := DriftOffset{}.Apply(mgl32.Vec3{0, 0, 0}, u)
	assert.InDeltaSlice(t, []float32{-12, -12, -12}, out[:], 1e-5)

	u = Uniforms{Radius: 10, Time: 1, Direction: mgl32.Vec3{1, 0, 0}, MovementSpeed: 2}
	out = DriftOffset{}.Apply(mgl32.Vec3{5, 0, 0}, u)
	assert.InDelta(t, -5.0, out.X(), 1e-5)
	assert.InDelta(t, -12.0, out.Y(), 1e-5)
}

func TestNewStarFieldMaterial(t *testing.T) {
	cfg := DefaultStarFieldConfig()
	cfg.Direction = [3]float32{1, 2, 3}
	cfg.MovementSpeed = 4

	m := NewStarFieldMaterial(cfg)
	assert.Equal(t, MotionWrap, m.Strategy().Motion())
	assert.Equal(t, float32(100), m.Uniforms().Radius)
	assert.Equal(t, mgl32.Vec3{}, m.Uniforms().Direction, "wrap ignores direction")
	assert.False(t, m.FadeEnabled())

	cfg.Motion = MotionDrift
	cfg.Fade = true
	m = NewStarFieldMaterial(cfg)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.Uniforms().Direction)
	assert.Equal(t, float32(4), m.Uniforms().MovementSpeed)
	assert.Equal(t, float32(1), m.Uniforms().Fade)
}

func TestStarFieldMaterial_Tick(t *testing.T) {
	m := NewStarFieldMaterial(DefaultStarFieldConfig())
	m.Tick(time.Second, 2)
	assert.InDelta(t, 2.0, m.Time(), 1e-6)

	m.Tick(1500*time.Millisecond, 1)
	assert.InDelta(t, 1.5, m.Time(), 1e-6)
}

func TestStarFieldMaterial_SetFade(t *testing.T) {
	m := NewStarFieldMaterial(DefaultStarFieldConfig())
	m.SetFade(true)
	assert.Equal(t, float32(1), m.Uniforms().Fade)
	m.SetFade(false)
	assert.Equal(t, float32(0), m.Uniforms().Fade)
}

func TestFragmentOpacity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		pc := mgl32.Vec2{float32(rng.Float64()), float32(rng.Float64())}
		assert.Equal(t, float32(1), FragmentOpacity(pc, false))
	}

	assert.InDelta(t, 0.5, FragmentOpacity(mgl32.Vec2{0.75, 0.5}, true), 1e-6)
	centre := FragmentOpacity(mgl32.Vec2{0.5, 0.5}, true)
	corner := FragmentOpacity(mgl32.Vec2{0, 0}, true)
	assert.InDelta(t, 0.982, centre, 1e-3)
	assert.Less(t, corner, float32(0.05))
}

func TestPointSize(t *testing.T) {
	// sin(-100 + 100) = 0 leaves the twinkle factor at 3.
	assert.InDelta(t, 3.0, PointSize(1, -30, -100), 1e-5)
	// Twice as far, half as big.
	assert.InDelta(t, PointSize(2, -10, 0)/2, PointSize(2, -20, 0), 1e-5)
}
