package glass

import "math"

// incidentRay is the viewing direction: straight down onto the substrate.
var incidentRay = V2(0, -1)

// flatNormal is used whenever a normal cannot be computed.
var flatNormal = V2(0, 1)

// unitOrFlat normalizes v, falling back to the flat normal for
// zero-length or non-finite vectors.
func unitOrFlat(v Vec2) Vec2 {
	n := v.Normalize()
	if n.IsZero() {
		return flatNormal
	}
	return n
}

// Refract bends the unit incident ray through a surface with unit normal n
// (pointing toward the incoming ray) using the vector form of Snell's law.
// ratio is n_outside/n_inside. The second result is false on total
// internal reflection.
func Refract(incident, n Vec2, ratio float64) (Vec2, bool) {
	cosI := -incident.Dot(n)
	sinI := math.Sqrt(math.Max(0, 1-cosI*cosI))
	sinT := ratio * sinI
	if sinT > 1 {
		return Vec2{}, false
	}
	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))
	return incident.Mul(ratio).Add(n.Mul(ratio*cosI - cosT)), true
}

// sampleAt computes the raw displacement at distance d from the edge.
//
// The displacement direction is taken orthogonal to the edge-tangent normal
// (slope, 1), not to the optical surface normal used for refraction. The
// rendered effect depends on this, so it is kept as is.
func sampleAt(p Profile, d float64, params Params) RadialSample {
	slope := Slope(p, d, params.SampleDelta)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		slope = 0
	}

	edgeNormal := unitOrFlat(V2(slope, 1))
	surfaceNormal := unitOrFlat(V2(-slope, 1))
	if surfaceNormal.Y < 0 {
		surfaceNormal = surfaceNormal.Neg()
	}

	s := RadialSample{Distance: int(d)}

	// Matching media form no optical boundary: the ray passes unbent.
	if params.IndexOutside == params.IndexInside {
		return s
	}

	t, ok := Refract(incidentRay, surfaceNormal, params.IndexOutside/params.IndexInside)
	if !ok {
		return s
	}
	s.Magnitude = t.Length()
	s.Angle = math.Atan2(-edgeNormal.X, edgeNormal.Y)
	return s
}
