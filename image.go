package glass

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/gogpu/glass/internal/parallel"
)

// Neutral is the "no displacement" pixel value.
var Neutral = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// DisplacementImage is an RGBA raster whose red and green channels encode
// X and Y displacement centered at 128.
type DisplacementImage struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewDisplacementImage creates an image filled with the neutral color.
func NewDisplacementImage(width, height int) *DisplacementImage {
	img := &DisplacementImage{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	for i := 0; i < len(img.data); i += 4 {
		img.data[i+0] = Neutral.R
		img.data[i+1] = Neutral.G
		img.data[i+2] = Neutral.B
		img.data[i+3] = Neutral.A
	}
	return img
}

// Width returns the width of the image.
func (m *DisplacementImage) Width() int {
	return m.width
}

// Height returns the height of the image.
func (m *DisplacementImage) Height() int {
	return m.height
}

// Data returns the raw pixel data (RGBA format).
func (m *DisplacementImage) Data() []uint8 {
	return m.data
}

// SetPixel sets the color of a single pixel.
func (m *DisplacementImage) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := (y*m.width + x) * 4
	m.data[i+0] = c.R
	m.data[i+1] = c.G
	m.data[i+2] = c.B
	m.data[i+3] = c.A
}

// Pixel returns the color of a single pixel.
func (m *DisplacementImage) Pixel(x, y int) color.NRGBA {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return color.NRGBA{}
	}
	i := (y*m.width + x) * 4
	return color.NRGBA{R: m.data[i+0], G: m.data[i+1], B: m.data[i+2], A: m.data[i+3]}
}

// At implements the image.Image interface.
func (m *DisplacementImage) At(x, y int) color.Color {
	return m.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (m *DisplacementImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *DisplacementImage) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage converts the raster to an image.NRGBA.
func (m *DisplacementImage) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	copy(img.Pix, m.data)
	return img
}

// EncodePNG writes the raster as PNG.
func (m *DisplacementImage) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, m.ToImage()); err != nil {
		return fmt.Errorf("glass: encode PNG: %w", err)
	}
	return nil
}

// PNG returns the PNG encoding of the raster.
func (m *DisplacementImage) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL returns the raster as a data:image/png;base64 URL.
func (m *DisplacementImage) DataURL() (string, error) {
	b, err := m.PNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}

// encodeChannel maps a displacement component in [-1, 1] to a channel byte.
// Values are clamped and rounded half to even.
func encodeChannel(v float64) uint8 {
	c := 128 + v*127
	if math.IsNaN(c) {
		return 128
	}
	return uint8(math.RoundToEven(math.Max(0, math.Min(255, c))))
}

// Rasterize renders field into a params.Width x params.Height image.
// Rows are split into bands rendered in parallel; the output does not
// depend on the number of workers.
func Rasterize(field *DisplacementField, params Params) (*DisplacementImage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if field == nil || field.Len() == 0 {
		return nil, ErrDegenerateField
	}

	start := time.Now()
	img := NewDisplacementImage(params.Width, params.Height)
	center := params.EffectCenter()
	radius := field.Radius

	renderRows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < params.Width; x++ {
				d := V2(float64(x), float64(y)).Sub(center).Length()
				if d > radius {
					continue
				}
				v := field.At(math.Max(0, radius-d)).Vector()
				img.SetPixel(x, y, color.NRGBA{
					R: encodeChannel(v.X),
					G: encodeChannel(v.Y),
					B: 128,
					A: 255,
				})
			}
		}
	}

	workers := params.workers()
	if workers == 1 || params.Height < 2 {
		renderRows(0, params.Height)
	} else {
		pool := parallel.NewWorkerPool(workers)
		defer pool.Close()
		pool.ExecuteAll(parallel.RowBands(params.Height, workers, renderRows))
	}

	Logger().Debug("glass: displacement image rasterized",
		"width", params.Width,
		"height", params.Height,
		"workers", workers,
		"elapsed", time.Since(start))

	return img, nil
}
