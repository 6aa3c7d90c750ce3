package filter

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/glass"
)

// DisplacementFilter warps a source image by a displacement map.
type DisplacementFilter struct {
	// Map holds X displacement in red and Y displacement in green.
	Map *glass.DisplacementImage

	// Scale is the feDisplacementMap scale attribute.
	Scale float64
}

// NewDisplacementFilter creates a filter from a generated effect.
func NewDisplacementFilter(eff *glass.Effect) *DisplacementFilter {
	return &DisplacementFilter{
		Map:   eff.Image,
		Scale: eff.Filter.Scale,
	}
}

// Apply writes the displaced src into dst over bounds. Pixels outside the
// map are copied unchanged; samples falling outside src are transparent.
func (f *DisplacementFilter) Apply(src, dst *image.NRGBA, bounds image.Rectangle) {
	if src == nil || dst == nil || f.Map == nil {
		return
	}

	bounds = bounds.Intersect(dst.Bounds())
	srcBounds := src.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if x >= f.Map.Width() || y >= f.Map.Height() {
				dst.SetNRGBA(x, y, nrgbaAt(src, srcBounds, x, y))
				continue
			}

			m := f.Map.Pixel(x, y)
			dx := f.Scale * (float64(m.R)/255 - 0.5)
			dy := f.Scale * (float64(m.G)/255 - 0.5)

			sx := int(math.Floor(float64(x) + dx + 0.5))
			sy := int(math.Floor(float64(y) + dy + 0.5))
			dst.SetNRGBA(x, y, nrgbaAt(src, srcBounds, sx, sy))
		}
	}
}

func nrgbaAt(img *image.NRGBA, b image.Rectangle, x, y int) color.NRGBA {
	if !image.Pt(x, y).In(b) {
		return color.NRGBA{}
	}
	return img.NRGBAAt(x, y)
}
