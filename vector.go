package skipta

import "math"

// Point is a coordinate vector of arbitrary dimension.
type Point []float64

func NewPoint(coords ...float64) Point {
	return Point(coords)
}

func (p Point) Clone() Point {
	q := make(Point, len(p))
	copy(q, p)
	return q
}

func (p Point) Equal(q Point) bool {
	if len(p) != len(q) {
		return false
	}
	for c := range p {
		if p[c] != q[c] {
			return false
		}
	}
	return true
}

func (p Point) EqualWithEpsilon(q Point, epsilon float64) bool {
	if len(p) != len(q) {
		return false
	}
	for c := range p {
		if math.Abs(p[c]-q[c]) > epsilon {
			return false
		}
	}
	return true
}

// Dot returns the dot product of p and q. p and q must have the same length.
func (p Point) Dot(q Point) float64 {
	var dot float64
	for c := range p {
		dot += p[c] * q[c]
	}
	return dot
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Normalized returns a unit-length copy of p. A zero vector is returned
// unchanged.
func (p Point) Normalized() Point {
	q := p.Clone()
	norm := p.Norm()
	if norm != 0 {
		for c := range q {
			q[c] /= norm
		}
	}
	return q
}

func Add(a Point, b Point) Point {
	q := make(Point, len(a))
	for c := range a {
		q[c] = a[c] + b[c]
	}
	return q
}

func Sub(a Point, b Point) Point {
	q := make(Point, len(a))
	for c := range a {
		q[c] = a[c] - b[c]
	}
	return q
}

func Mul(a Point, s float64) Point {
	q := make(Point, len(a))
	for c := range a {
		q[c] = a[c] * s
	}
	return q
}

func EqualWithEpsilon(a float64, b float64, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
