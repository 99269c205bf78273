package transforms

import "github.com/willbeason/mandelbrot/pkg/plane"

// Mandelbrot is the quadratic step z² + C.
type Mandelbrot struct {
	C plane.Complex
}

func (m Mandelbrot) Next(z plane.Complex) plane.Complex {
	return plane.Add(plane.Square(z), m.C)
}
