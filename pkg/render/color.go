package render

import "github.com/willbeason/mandelbrot/pkg/escape"

const (
	// Inside is the color of bounded points: opaque black.
	Inside uint32 = 0xff000000
)

// Color maps a result onto an opaque grayscale ramp. Points that escape
// quickly are bright and points that take close to maxIterations fade into
// the black of the bounded points.
func Color(r escape.Result, maxIterations int) uint32 {
	if !r.Diverged || maxIterations <= 0 {
		return Inside
	}

	level := 0xff - uint32(0xff*r.At/maxIterations)

	return Inside | level<<16 | level<<8 | level
}
