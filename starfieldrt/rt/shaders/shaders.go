package shaders

import (
	_ "embed"
)

//go:embed starfield.wgsl
var StarFieldWGSL string

//go:embed axes.wgsl
var AxesWGSL string

const (
	StarFieldFragmentEntryPoint = "fs_main"
)
