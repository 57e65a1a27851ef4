package app

import (
	"testing"
)

func TestApp_trackFPS(t *testing.T) {
	a := &App{LastRenderTime: 1.0}
	for i := 1; i <= 64; i++ {
		a.trackFPS(1.0 + float64(i)/64.0)
	}
	if a.FPS != 64 {
		t.Errorf("expected 64 FPS, got %f", a.FPS)
	}
	if a.FrameCount != 0 {
		t.Errorf("expected counter reset after a full second, got %d", a.FrameCount)
	}
}
