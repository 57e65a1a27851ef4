package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAxesLines(t *testing.T) {
	lines := AxesLines(5)
	assert.Len(t, lines, 3)
	for i, l := range lines {
		assert.Equal(t, mgl32.Vec3{}, l.From)
		assert.InDelta(t, 5, l.To.Len(), 1e-6)
		assert.Equal(t, float32(5), l.To[i], "axis %d points along its own axis", i)
		assert.Equal(t, float32(1), l.Color[i])
	}
}

func TestAxesLines_DefaultSize(t *testing.T) {
	assert.Equal(t, float32(1), AxesLines(0)[0].To.X())
	assert.Equal(t, float32(1), AxesLines(-3)[2].To.Z())
}
