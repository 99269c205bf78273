package plane

import (
	"fmt"
	"math"
)

// Complex is a point in the complex plane, Re + Im*i.
//
// Complex is a value type: operations return new values and never modify
// their receivers. Two values are equal when both components are equal, so
// Complex may be compared with == and used as a map key.
type Complex struct {
	Re, Im float64
}

// Zero is the origin of the plane.
var Zero = Complex{}

func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns a + b.
func Add(a, b Complex) Complex {
	return Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}
}

// Multiply returns the complex product a * b.
func Multiply(a, b Complex) Complex {
	return Complex{
		Re: a.Re*b.Re - a.Im*b.Im,
		Im: a.Im*b.Re + a.Re*b.Im,
	}
}

// Square returns a * a.
func Square(a Complex) Complex {
	return Multiply(a, a)
}

// Magnitude is the Euclidean norm of a. It is never negative.
func Magnitude(a Complex) float64 {
	return math.Sqrt(a.Re*a.Re + a.Im*a.Im)
}

func (c Complex) Add(o Complex) Complex { return Add(c, o) }

func (c Complex) Mul(o Complex) Complex { return Multiply(c, o) }

func (c Complex) Square() Complex { return Square(c) }

func (c Complex) Abs() float64 { return Magnitude(c) }

// Equal reports whether both components are equal.
func (c Complex) Equal(o Complex) bool {
	return c.Re == o.Re && c.Im == o.Im
}

// Hash combines the bit patterns of both components.
// -0 hashes as 0 so values that are Equal share a Hash.
func (c Complex) Hash() uint64 {
	re, im := c.Re, c.Im
	if re == 0 {
		re = 0
	}
	if im == 0 {
		im = 0
	}

	return math.Float64bits(re)*397 ^ math.Float64bits(im)
}

func (c Complex) String() string {
	return fmt.Sprintf("(%g%+gi)", c.Re, c.Im)
}
