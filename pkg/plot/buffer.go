package plot

import "fmt"

// Sampling is how RenderBuffer turns cells into output pixels.
type Sampling int

const (
	// Direct reads cell (x, y) for output pixel (x, y).
	Direct Sampling = iota

	// BoxAverage averages every cell an output pixel covers, per color channel.
	BoxAverage
)

func (s Sampling) String() string {
	switch s {
	case Direct:
		return "direct"
	case BoxAverage:
		return "box"
	default:
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
}

// ParseSampling is the inverse of Sampling.String.
func ParseSampling(s string) (Sampling, error) {
	switch s {
	case "direct":
		return Direct, nil
	case "box":
		return BoxAverage, nil
	default:
		return 0, fmt.Errorf("%w: unknown sampling %q", ErrInvalidConfig, s)
	}
}

// RenderBuffer returns a row-major width*height buffer of packed 0xAARRGGBB
// colors, treating each cell value as a color.
//
// The buffer may not be larger than the grid in either dimension.
func (g *Grid) RenderBuffer(width, height int, sampling Sampling) ([]uint32, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: buffer %dx%d must be non-empty", ErrInvalidConfig, width, height)
	}
	if width > g.xPixels || height > g.yPixels {
		return nil, fmt.Errorf("%w: buffer %dx%d exceeds grid %dx%d",
			ErrInvalidConfig, width, height, g.xPixels, g.yPixels)
	}

	buf := make([]uint32, width*height)

	switch sampling {
	case Direct:
		for y := 0; y < height; y++ {
			row := g.values[y*g.xPixels:]
			for x := 0; x < width; x++ {
				buf[y*width+x] = uint32(row[x])
			}
		}
	case BoxAverage:
		for y := 0; y < height; y++ {
			j0, j1 := span(y, height, g.yPixels)
			for x := 0; x < width; x++ {
				i0, i1 := span(x, width, g.xPixels)
				buf[y*width+x] = g.average(i0, i1, j0, j1)
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown sampling %v", ErrInvalidConfig, sampling)
	}

	return buf, nil
}

// span is the range of cells covered by output pixel p of n, over cells total.
// n <= cells, so the range is never empty.
func span(p, n, cells int) (int, int) {
	return p * cells / n, (p + 1) * cells / n
}

func (g *Grid) average(i0, i1, j0, j1 int) uint32 {
	var a, r, gr, b uint64

	for j := j0; j < j1; j++ {
		for _, v := range g.values[j*g.xPixels+i0 : j*g.xPixels+i1] {
			c := uint32(v)
			a += uint64(c >> 24)
			r += uint64(c >> 16 & 0xff)
			gr += uint64(c >> 8 & 0xff)
			b += uint64(c & 0xff)
		}
	}

	n := uint64((i1 - i0) * (j1 - j0))

	return uint32(a/n)<<24 | uint32(r/n)<<16 | uint32(gr/n)<<8 | uint32(b/n)
}
