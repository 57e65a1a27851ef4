package shaders

import (
	"strings"
	"testing"
)

func TestStarFieldWGSL_EntryPoints(t *testing.T) {
	for _, fn := range []string{"fn vs_wrap(", "fn vs_drift(", "fn " + StarFieldFragmentEntryPoint + "("} {
		if !strings.Contains(StarFieldWGSL, fn) {
			t.Errorf("starfield.wgsl is missing %q", fn)
		}
	}
}

func TestStarFieldWGSL_Bindings(t *testing.T) {
	for _, b := range []string{
		"@group(0) @binding(0) var<uniform> camera",
		"@group(0) @binding(1) var<uniform> stars",
	} {
		if !strings.Contains(StarFieldWGSL, b) {
			t.Errorf("starfield.wgsl is missing binding %q", b)
		}
	}
}

func TestStarFieldWGSL_GuardsRadius(t *testing.T) {
	for _, guard := range []string{
		"select(x, wrapped, r > 0.0)",
		"select(p, wrapped, stars.radius > 0.0)",
	} {
		if !strings.Contains(StarFieldWGSL, guard) {
			t.Errorf("starfield.wgsl is missing radius guard %q", guard)
		}
	}
}

func TestAxesWGSL(t *testing.T) {
	for _, s := range []string{"fn vs_main(", "fn fs_main(", "@group(0) @binding(0) var<uniform> camera"} {
		if !strings.Contains(AxesWGSL, s) {
			t.Errorf("axes.wgsl is missing %q", s)
		}
	}
}
