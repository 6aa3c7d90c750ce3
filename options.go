package glass

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// ErrInvalidParams is returned when generation parameters are out of range.
var ErrInvalidParams = errors.New("glass: invalid parameters")

// Default generation parameters. They reproduce the navigation bar effect
// of the original site.
const (
	DefaultRadius       = 10.0
	DefaultIndexOutside = 1.0
	DefaultIndexInside  = 1.5
	DefaultSampleDelta  = 0.001
	DefaultWidth        = 100
	DefaultHeight       = 85
	DefaultScaleFactor  = -20.0
)

// Params holds the geometry and optics of the effect.
type Params struct {
	// Radius is the outer radius of the curved edge profile in pixels.
	Radius float64

	// IndexOutside and IndexInside are the refractive indices of the
	// surrounding medium and the glass.
	IndexOutside float64
	IndexInside  float64

	// SampleDelta is the step used for numerical differentiation.
	SampleDelta float64

	// Width and Height are the raster dimensions in pixels.
	Width  int
	Height int

	// Center is the effect center in raster coordinates.
	// Zero value with HasCenter false means the image center.
	Center    Vec2
	HasCenter bool

	// ScaleFactor multiplies the maximum displacement to produce the
	// feDisplacementMap scale attribute.
	ScaleFactor float64

	// Workers is the number of rasterization workers.
	// Zero or negative means GOMAXPROCS.
	Workers int
}

// Option configures Params during creation.
//
// Example:
//
//	eff, err := glass.NewEffect(
//	    glass.WithRadius(24),
//	    glass.WithSize(320, 64),
//	)
type Option func(*Params)

// DefaultParams returns the parameters used when no options are given.
func DefaultParams() Params {
	return Params{
		Radius:       DefaultRadius,
		IndexOutside: DefaultIndexOutside,
		IndexInside:  DefaultIndexInside,
		SampleDelta:  DefaultSampleDelta,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		ScaleFactor:  DefaultScaleFactor,
	}
}

// NewParams returns DefaultParams with the options applied.
func NewParams(opts ...Option) Params {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithRadius sets the outer radius of the edge profile.
func WithRadius(r float64) Option {
	return func(p *Params) {
		p.Radius = r
	}
}

// WithIndices sets the refractive indices outside and inside the glass.
func WithIndices(outside, inside float64) Option {
	return func(p *Params) {
		p.IndexOutside = outside
		p.IndexInside = inside
	}
}

// WithSampleDelta sets the numerical differentiation step.
func WithSampleDelta(d float64) Option {
	return func(p *Params) {
		p.SampleDelta = d
	}
}

// WithSize sets the raster dimensions.
func WithSize(width, height int) Option {
	return func(p *Params) {
		p.Width = width
		p.Height = height
	}
}

// WithCenter places the effect center at (x, y) instead of the image center.
func WithCenter(x, y float64) Option {
	return func(p *Params) {
		p.Center = V2(x, y)
		p.HasCenter = true
	}
}

// WithScaleFactor sets the multiplier applied to the maximum displacement
// when building the compositing stage.
func WithScaleFactor(s float64) Option {
	return func(p *Params) {
		p.ScaleFactor = s
	}
}

// WithWorkers sets the number of rasterization workers.
func WithWorkers(n int) Option {
	return func(p *Params) {
		p.Workers = n
	}
}

// EffectCenter returns the configured center, or the image center.
func (p Params) EffectCenter() Vec2 {
	if p.HasCenter {
		return p.Center
	}
	return V2(float64(p.Width)/2, float64(p.Height)/2)
}

// SampleCount returns ceil(Radius), the length of the radial table.
func (p Params) SampleCount() int {
	if p.Radius <= 0 {
		return 0
	}
	return int(math.Ceil(p.Radius))
}

func (p Params) workers() int {
	if p.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return p.Workers
}

// Validate reports whether the parameters can be used for generation.
// A zero or negative radius is valid and yields a degenerate field.
func (p Params) Validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	switch {
	case !finite(p.Radius):
		return fmt.Errorf("%w: radius %v", ErrInvalidParams, p.Radius)
	case !finite(p.IndexOutside) || p.IndexOutside <= 0:
		return fmt.Errorf("%w: outside index %v", ErrInvalidParams, p.IndexOutside)
	case !finite(p.IndexInside) || p.IndexInside <= 0:
		return fmt.Errorf("%w: inside index %v", ErrInvalidParams, p.IndexInside)
	case !finite(p.SampleDelta) || p.SampleDelta <= 0:
		return fmt.Errorf("%w: sample delta %v", ErrInvalidParams, p.SampleDelta)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, p.Width, p.Height)
	case !finite(p.ScaleFactor):
		return fmt.Errorf("%w: scale factor %v", ErrInvalidParams, p.ScaleFactor)
	case p.HasCenter && (!finite(p.Center.X) || !finite(p.Center.Y)):
		return fmt.Errorf("%w: center %v", ErrInvalidParams, p.Center)
	}
	return nil
}
