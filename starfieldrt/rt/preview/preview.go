// Package preview rasterises star fields on the CPU using the same shading
// math as starfield.wgsl. It backs headless snapshots and render tests.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/gekko3d/starfield/starfieldrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Supersample is the linear oversampling factor before downscaling.
const Supersample = 2

type Field struct {
	Cloud    *core.PointCloud
	Material *core.StarFieldMaterial
}

// Render draws fields as seen from cam into a width x height image.
// Blending is additive with source alpha and nothing writes depth,
// so draw order does not matter.
func Render(fields []Field, cam *core.CameraState, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	w, h := width*Supersample, height*Supersample
	acc := make([]float32, w*h*3)

	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix(float32(width) / float32(height))

	for _, f := range fields {
		if f.Cloud == nil || f.Material == nil {
			continue
		}
		u := f.Material.Uniforms()
		fade := f.Material.FadeEnabled()
		for i := 0; i < f.Cloud.Count; i++ {
			p := f.Material.VertexPosition(f.Cloud.Position(i))
			mv := view.Mul4x1(p.Vec4(1))
			if mv.Z() >= 0 {
				continue
			}
			clip := proj.Mul4x1(mv)
			if clip.W() <= 0 {
				continue
			}
			size := core.PointSize(f.Cloud.Sizes[i], mv.Z(), u.Time) * Supersample
			if size <= 0 {
				continue
			}
			cx := (clip.X()/clip.W()*0.5 + 0.5) * float32(w)
			cy := (0.5 - clip.Y()/clip.W()*0.5) * float32(h)
			splat(acc, w, h, cx, cy, size, f.Cloud.Color(i), fade)
		}
	}

	hi := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		hi.Pix[4*i+0] = toByte(acc[3*i+0])
		hi.Pix[4*i+1] = toByte(acc[3*i+1])
		hi.Pix[4*i+2] = toByte(acc[3*i+2])
		hi.Pix[4*i+3] = 0xff
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Src, nil)
	return out
}

// splat accumulates one square sprite of side size centred at (cx, cy).
func splat(acc []float32, w, h int, cx, cy, size float32, rgb [3]float32, fade bool) {
	half := size / 2
	x0 := int(math.Floor(float64(cx - half)))
	x1 := int(math.Ceil(float64(cx + half)))
	y0 := int(math.Floor(float64(cy - half)))
	y1 := int(math.Ceil(float64(cy + half)))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w), min(y1, h)

	for y := y0; y < y1; y++ {
		v := (float32(y) + 0.5 - (cy - half)) / size
		if v < 0 || v > 1 {
			continue
		}
		for x := x0; x < x1; x++ {
			u := (float32(x) + 0.5 - (cx - half)) / size
			if u < 0 || u > 1 {
				continue
			}
			a := core.FragmentOpacity(mgl32.Vec2{u, v}, fade)
			o := 3 * (y*w + x)
			acc[o+0] += rgb[0] * a
			acc[o+1] += rgb[1] * a
			acc[o+2] += rgb[2] * a
		}
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

// Luma is a helper for callers that only need brightness at a pixel.
func Luma(img *image.RGBA, x, y int) uint8 {
	c := img.RGBAAt(x, y)
	return color.GrayModel.Convert(c).(color.Gray).Y
}
