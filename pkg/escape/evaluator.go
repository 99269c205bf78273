// Package escape decides whether the recurrence z = z² + c stays bounded
// for a given c, and after how many iterations it escapes if it does not.
package escape

import (
	"errors"
	"fmt"
	"math"

	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/transforms"
)

var ErrInvalidConfig = errors.New("invalid evaluator configuration")

// Result is the outcome of evaluating a single point.
type Result struct {
	// Diverged is whether the orbit exceeded the limit.
	Diverged bool

	// At is the number of completed iterations before escape was detected.
	// -1 for bounded points.
	At int
}

func DivergedAt(i int) Result {
	return Result{Diverged: true, At: i}
}

func Bounded() Result {
	return Result{Diverged: false, At: -1}
}

func (r Result) String() string {
	if r.Diverged {
		return fmt.Sprintf("diverged at %d", r.At)
	}
	return "bounded"
}

// Evaluator runs the escape-time test with a fixed iteration bound and
// escape threshold. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	maxIterations int
	limit         float64
}

func New(maxIterations int, limit float64) (*Evaluator, error) {
	if maxIterations < 0 {
		return nil, fmt.Errorf("%w: maxIterations %d is negative", ErrInvalidConfig, maxIterations)
	}
	if math.IsNaN(limit) || limit < 0 {
		return nil, fmt.Errorf("%w: limit %v is not a non-negative number", ErrInvalidConfig, limit)
	}

	return &Evaluator{maxIterations: maxIterations, limit: limit}, nil
}

func (e *Evaluator) MaxIterations() int { return e.maxIterations }

func (e *Evaluator) Limit() float64 { return e.limit }

// Evaluate iterates z = z² + c from z = 0.
//
// The limit is checked before each step, so escape reported at i means i
// steps completed. The first check sees z = 0 and never escapes.
func (e *Evaluator) Evaluate(c plane.Complex) Result {
	step := transforms.Mandelbrot{C: c}
	z := plane.Zero

	for i := 0; i < e.maxIterations; i++ {
		if plane.Magnitude(z) > e.limit {
			return DivergedAt(i)
		}
		z = step.Next(z)
	}

	return Bounded()
}
