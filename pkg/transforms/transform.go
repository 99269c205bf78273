package transforms

import "github.com/willbeason/mandelbrot/pkg/plane"

// A Transform maps a point of the plane to its next point.
type Transform interface {
	Next(plane.Complex) plane.Complex
}

// Orbit applies t to z n times and returns every intermediate point.
// The result has length n and does not include z itself.
func Orbit(t Transform, z plane.Complex, n int) []plane.Complex {
	if n <= 0 {
		return nil
	}

	path := make([]plane.Complex, n)
	for i := range path {
		z = t.Next(z)
		path[i] = z
	}

	return path
}

var (
	_ Transform = Mandelbrot{}
	_ Transform = Linear{}
)
