package glass

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateField_SampleCount(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{1, 1},
		{10, 10},
		{10.2, 11},
		{0.3, 1},
		{127, 127},
	}

	for _, tt := range tests {
		f, err := GenerateField(NewParams(WithRadius(tt.radius)))
		if err != nil {
			t.Fatalf("GenerateField(R=%v) error = %v", tt.radius, err)
		}
		if f.Len() != tt.want {
			t.Errorf("GenerateField(R=%v).Len() = %d, want %d", tt.radius, f.Len(), tt.want)
		}
		for i, s := range f.Samples {
			if s.Distance != i {
				t.Errorf("R=%v: sample %d has Distance %d", tt.radius, i, s.Distance)
			}
		}
	}
}

func TestGenerateField_Normalized(t *testing.T) {
	tests := []struct {
		name    string
		out, in float64
	}{
		{"air to glass", 1.0, 1.5},
		{"air to water", 1.0, 1.33},
		{"glass to air", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := GenerateField(NewParams(WithIndices(tt.out, tt.in)))
			if err != nil {
				t.Fatalf("GenerateField() error = %v", err)
			}

			hasMax := false
			for i, s := range f.Samples {
				if s.Magnitude < 0 || s.Magnitude > 1 {
					t.Errorf("sample %d magnitude = %v, want in [0, 1]", i, s.Magnitude)
				}
				if s.Magnitude == 1 {
					hasMax = true
				}
			}
			if !hasMax {
				t.Error("no sample has normalized magnitude exactly 1")
			}
			if f.MaxDisplacement <= 0 {
				t.Errorf("MaxDisplacement = %v, want > 0", f.MaxDisplacement)
			}
		})
	}
}

func TestRadialTable_MatchingIndices(t *testing.T) {
	for _, n := range []float64{1.0, 1.5} {
		samples, err := RadialTable(NewParams(WithIndices(n, n)))
		if err != nil {
			t.Fatalf("RadialTable() error = %v", err)
		}
		for i, s := range samples {
			if s.Magnitude != 0 {
				t.Errorf("n=%v: sample %d magnitude = %v, want 0", n, i, s.Magnitude)
			}
		}
	}

	_, err := GenerateField(NewParams(WithIndices(1.2, 1.2)))
	if !errors.Is(err, ErrDegenerateField) {
		t.Errorf("GenerateField(matching indices) error = %v, want ErrDegenerateField", err)
	}
}

func TestGenerateField_DegenerateRadius(t *testing.T) {
	_, err := GenerateField(NewParams(WithRadius(0)))
	if !errors.Is(err, ErrDegenerateField) {
		t.Errorf("GenerateField(R=0) error = %v, want ErrDegenerateField", err)
	}

	_, err = GenerateField(NewParams(WithRadius(-3)))
	if !errors.Is(err, ErrDegenerateField) {
		t.Errorf("GenerateField(R=-3) error = %v, want ErrDegenerateField", err)
	}

	_, err = GenerateField(NewParams(WithRadius(math.Inf(1))))
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("GenerateField(R=+Inf) error = %v, want ErrInvalidParams", err)
	}
}

func TestGenerateField_TotalInternalReflection(t *testing.T) {
	samples, err := RadialTable(NewParams(WithIndices(1.5, 1.0)))
	if err != nil {
		t.Fatalf("RadialTable() error = %v", err)
	}

	// The steep edge reflects totally; the flat center refracts.
	if s := samples[0]; s.Magnitude != 0 || s.Angle != 0 {
		t.Errorf("edge sample = %+v, want zero displacement", s)
	}
	if s := samples[len(samples)-1]; s.Magnitude == 0 {
		t.Errorf("center sample = %+v, want non-zero displacement", s)
	}
}

func TestGenerateField_AngleFollowsEdgeNormal(t *testing.T) {
	p := NewParams()
	f, err := GenerateField(p)
	if err != nil {
		t.Fatalf("GenerateField() error = %v", err)
	}

	arc := CircularArc{R: p.Radius}
	for i, s := range f.Samples {
		slope := Slope(arc, float64(i), p.SampleDelta)
		want := math.Atan2(-slope, 1)
		if math.Abs(s.Angle-want) > 1e-12 {
			t.Errorf("sample %d angle = %v, want %v", i, s.Angle, want)
		}
	}
}

func TestDisplacementField_At(t *testing.T) {
	f, err := GenerateField(NewParams())
	if err != nil {
		t.Fatalf("GenerateField() error = %v", err)
	}

	tests := []struct {
		d    float64
		want int
	}{
		{-2, 0},
		{0, 0},
		{3.7, 3},
		{9.99, 9},
		{25, 9},
	}
	for _, tt := range tests {
		if got := f.At(tt.d); got.Distance != tt.want {
			t.Errorf("At(%v).Distance = %d, want %d", tt.d, got.Distance, tt.want)
		}
	}
}

func TestRadialSample_Vector(t *testing.T) {
	s := RadialSample{Magnitude: 0.5, Angle: math.Pi / 2}
	if v := s.Vector(); !approx(v, V2(0, 0.5), 1e-12) {
		t.Errorf("Vector() = %v, want (0, 0.5)", v)
	}
}

func BenchmarkGenerateField(b *testing.B) {
	p := NewParams(WithRadius(127))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = GenerateField(p)
	}
}
