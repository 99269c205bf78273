package transforms

import "github.com/willbeason/mandelbrot/pkg/plane"

// Linear is the affine map z*Multiply + Add.
//
// With a real Multiply it scales both axes equally, which is how grid
// indices are mapped onto the plane.
type Linear struct {
	Multiply plane.Complex
	Add      plane.Complex
}

func (l Linear) Next(z plane.Complex) plane.Complex {
	return plane.Add(plane.Multiply(z, l.Multiply), l.Add)
}
