package render

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/willbeason/mandelbrot/pkg/plot"
)

const (
	DefaultPixelSize     = 0.005
	DefaultMaxIterations = 100
	DefaultLimit         = 2.0
)

var ErrInvalidConfig = errors.New("invalid render configuration")

// Config is everything needed to render one window.
type Config struct {
	plot.Window

	// PixelSize is the side length of one cell in the plane.
	PixelSize float64

	MaxIterations int
	Limit         float64

	// Workers is the number of rows evaluated in parallel.
	// Zero means one per CPU.
	Workers int
}

// DefaultConfig covers the whole set at 600x500 cells.
func DefaultConfig() Config {
	return Config{
		Window:        plot.Window{MinX: -2, MaxX: 1, MinY: -1.25, MaxY: 1.25},
		PixelSize:     DefaultPixelSize,
		MaxIterations: DefaultMaxIterations,
		Limit:         DefaultLimit,
	}
}

// Validate checks only what the evaluator and grid do not.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// AddFlags binds c onto fs. Current values of c become the flag defaults.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&c.PixelSize, "pixel-size", c.PixelSize, "side length of one pixel in the plane")
	fs.Float64Var(&c.MinX, "min-x", c.MinX, "left edge of the window")
	fs.Float64Var(&c.MaxX, "max-x", c.MaxX, "right edge of the window")
	fs.Float64Var(&c.MinY, "min-y", c.MinY, "bottom edge of the window")
	fs.Float64Var(&c.MaxY, "max-y", c.MaxY, "top edge of the window")
	fs.IntVar(&c.MaxIterations, "iterations", c.MaxIterations, "iteration bound per point")
	fs.Float64Var(&c.Limit, "limit", c.Limit, "escape threshold on |z|")
	fs.IntVarP(&c.Workers, "workers", "j", c.Workers, "rows rendered in parallel, 0 for one per CPU")
}
