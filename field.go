package glass

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateField is returned when every raw sample has zero magnitude,
// so the field cannot be normalized. Callers should skip installing the
// effect.
var ErrDegenerateField = errors.New("glass: degenerate displacement field")

// RadialSample is the displacement at one integer distance from the edge.
type RadialSample struct {
	Distance  int
	Magnitude float64
	Angle     float64 // radians
}

// Vector decomposes the sample into X/Y displacement components.
func (s RadialSample) Vector() Vec2 {
	return V2(math.Cos(s.Angle)*s.Magnitude, math.Sin(s.Angle)*s.Magnitude)
}

// DisplacementField is the normalized radial displacement table.
// Samples are ordered from the edge (index 0) toward the center.
type DisplacementField struct {
	Samples []RadialSample

	// MaxDisplacement is the raw magnitude used as normalization divisor.
	MaxDisplacement float64

	// Radius is the outer radius the field was generated for.
	Radius float64
}

// RadialTable computes the raw, unnormalized samples for params using
// the circular arc profile.
func RadialTable(params Params) ([]RadialSample, error) {
	return RadialTableProfile(CircularArc{R: params.Radius}, params)
}

// RadialTableProfile computes raw samples for an arbitrary edge profile.
func RadialTableProfile(prof Profile, params Params) ([]RadialSample, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := params.SampleCount()
	samples := make([]RadialSample, n)
	for i := range n {
		samples[i] = sampleAt(prof, float64(i), params)
	}
	return samples, nil
}

// GenerateField computes the radial table for params and normalizes it so
// the largest magnitude equals 1.
func GenerateField(params Params) (*DisplacementField, error) {
	return GenerateFieldProfile(CircularArc{R: params.Radius}, params)
}

// GenerateFieldProfile is GenerateField for an arbitrary edge profile.
func GenerateFieldProfile(prof Profile, params Params) (*DisplacementField, error) {
	samples, err := RadialTableProfile(prof, params)
	if err != nil {
		return nil, err
	}

	maxMag := 0.0
	for _, s := range samples {
		maxMag = math.Max(maxMag, math.Abs(s.Magnitude))
	}
	if maxMag == 0 || math.IsNaN(maxMag) || math.IsInf(maxMag, 0) {
		return nil, fmt.Errorf("%w: radius %v, indices %v/%v",
			ErrDegenerateField, params.Radius, params.IndexOutside, params.IndexInside)
	}

	for i := range samples {
		samples[i].Magnitude /= maxMag
	}

	Logger().Debug("glass: displacement field generated",
		"samples", len(samples),
		"max_displacement", maxMag)

	return &DisplacementField{
		Samples:         samples,
		MaxDisplacement: maxMag,
		Radius:          params.Radius,
	}, nil
}

// Len returns the number of samples.
func (f *DisplacementField) Len() int {
	return len(f.Samples)
}

// At returns the sample for a fractional distance from the edge, clamped
// to the table.
func (f *DisplacementField) At(distanceFromEdge float64) RadialSample {
	i := int(math.Floor(math.Max(0, distanceFromEdge)))
	if i >= len(f.Samples) {
		i = len(f.Samples) - 1
	}
	return f.Samples[i]
}
