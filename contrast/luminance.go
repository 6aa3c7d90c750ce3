package contrast

import "image/color"

// Class is the CSS class applied to nav text.
type Class string

// Contrast classes. Dark text goes on light backgrounds.
const (
	Dark  Class = "contrast-dark"
	Light Class = "contrast-light"
)

// Threshold separates light from dark backgrounds.
const Threshold = 128

// Luminance returns the perceptual brightness of an 8-bit RGB triple,
// 0.299R + 0.587G + 0.114B.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// Classify picks the text class for a background luminance.
func Classify(luminance float64) Class {
	if luminance > Threshold {
		return Dark
	}
	return Light
}

// ClassifyColor is Classify(Luminance(c)).
func ClassifyColor(c color.NRGBA) Class {
	return Classify(Luminance(c.R, c.G, c.B))
}

// Opposite returns the other class.
func (c Class) Opposite() Class {
	if c == Dark {
		return Light
	}
	return Dark
}
