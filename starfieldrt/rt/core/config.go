package core

import (
	"fmt"
	"strings"
)

// Motion selects how the vertex stage moves stars over time.
type Motion string

const (
	// MotionWrap scrolls stars along -X and wraps them inside [-radius, radius].
	MotionWrap Motion = "wrap"
	// MotionDrift moves stars along Direction and wraps every axis independently.
	MotionDrift Motion = "drift"
)

func ParseMotion(s string) (Motion, error) {
	switch Motion(strings.ToLower(strings.TrimSpace(s))) {
	case MotionWrap, "":
		return MotionWrap, nil
	case MotionDrift:
		return MotionDrift, nil
	}
	return "", fmt.Errorf("unknown motion %q (want %q or %q)", s, MotionWrap, MotionDrift)
}

// UnmarshalText stores the canonical spelling, so "Drift" decodes as MotionDrift.
func (m *Motion) UnmarshalText(text []byte) error {
	parsed, err := ParseMotion(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// StarFieldConfig holds every tunable of a star field.
// Start from DefaultStarFieldConfig so unset values keep their defaults.
type StarFieldConfig struct {
	Radius     float32 `toml:"radius"`
	Depth      float32 `toml:"depth"`
	Count      int     `toml:"count"`
	Saturation float32 `toml:"saturation"`
	Factor     float32 `toml:"factor"`
	Fade       bool    `toml:"fade"`
	Speed      float32 `toml:"speed"`

	Motion        Motion     `toml:"motion"`
	Direction     [3]float32 `toml:"direction"`
	MovementSpeed float32    `toml:"movement_speed"`

	// Seed makes generation reproducible; 0 draws a fresh seed.
	Seed int64 `toml:"seed"`
}

func DefaultStarFieldConfig() StarFieldConfig {
	return StarFieldConfig{
		Radius:     100,
		Depth:      50,
		Count:      5000,
		Saturation: 0,
		Factor:     4,
		Fade:       false,
		Speed:      1,
		Motion:     MotionWrap,
	}
}

// GeometryKey captures the inputs the point cloud depends on.
// Two configs with equal keys produce interchangeable buffers.
type GeometryKey struct {
	Radius     float32
	Depth      float32
	Count      int
	Saturation float32
	Factor     float32
	Seed       int64
}

func (c StarFieldConfig) GeometryKey() GeometryKey {
	return GeometryKey{
		Radius:     c.Radius,
		Depth:      c.Depth,
		Count:      c.Count,
		Saturation: c.Saturation,
		Factor:     c.Factor,
		Seed:       c.Seed,
	}
}
