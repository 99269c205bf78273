// Package render evaluates every cell of a plot grid in parallel and turns
// the result into an image.
package render

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/plot"
)

// Row is one finished row of the grid, as packed 0xAARRGGBB colors.
// Y counts up from the bottom edge of the window.
type Row struct {
	Y      int      `json:"y"`
	Values []uint32 `json:"values"`
}

// Renderer owns a grid and the evaluator that fills it.
type Renderer struct {
	cfg       Config
	evaluator *escape.Evaluator
	grid      *plot.Grid
}

func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e, err := escape.New(cfg.MaxIterations, cfg.Limit)
	if err != nil {
		return nil, err
	}

	g, err := plot.New(cfg.PixelSize, cfg.MinX, cfg.MaxX, cfg.MinY, cfg.MaxY)
	if err != nil {
		return nil, err
	}

	return &Renderer{cfg: cfg, evaluator: e, grid: g}, nil
}

func (r *Renderer) Grid() *plot.Grid {
	return r.grid
}

// Render fills the grid. Each worker takes whole rows, so no two workers
// ever write the same cell.
//
// onRow, if not nil, is called once per finished row from a single
// goroutine. Rows arrive in no particular order.
//
// Cancellation is checked between rows. A render cancelled before its last
// row leaves the grid partially filled and returns the context's error.
func (r *Renderer) Render(ctx context.Context, onRow func(Row)) error {
	xPixels, yPixels := r.grid.Size()

	yChannel := make(chan int)
	go func() {
		defer close(yChannel)
		for y := 0; y < yPixels; y++ {
			select {
			case yChannel <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	rowChannel := make(chan Row, yPixels)

	parallel := r.cfg.workers()
	ywg := sync.WaitGroup{}
	ywg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func() {
			defer ywg.Done()
			for y := range yChannel {
				if ctx.Err() != nil {
					continue
				}
				rowChannel <- r.renderRow(y, xPixels)
			}
		}()
	}

	finished := 0
	rwg := sync.WaitGroup{}
	rwg.Add(1)
	go func() {
		defer rwg.Done()
		for row := range rowChannel {
			finished++
			if onRow != nil {
				onRow(row)
			}
		}
	}()

	ywg.Wait()
	close(rowChannel)
	rwg.Wait()

	if finished < yPixels {
		return ctx.Err()
	}
	return nil
}

func (r *Renderer) renderRow(y, xPixels int) Row {
	values := make([]uint32, xPixels)
	for x := 0; x < xPixels; x++ {
		c := r.grid.CellCenter(x, y)
		v := Color(r.evaluator.Evaluate(c), r.cfg.MaxIterations)

		r.grid.SetValue(c.Re, c.Im, int(v))
		values[x] = v
	}

	return Row{Y: y, Values: values}
}

// Image samples the grid down to width by height and flips it so the top
// edge of the window is the first image row. A zero width or height means
// the grid's own size.
func (r *Renderer) Image(width, height int, sampling plot.Sampling) (*image.RGBA, error) {
	xPixels, yPixels := r.grid.Size()
	if width == 0 {
		width = xPixels
	}
	if height == 0 {
		height = yPixels
	}

	buf, err := r.grid.RenderBuffer(width, height, sampling)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range buf {
		x := i % width
		y := height - 1 - i/width

		img.SetRGBA(x, y, Unpack(c))
	}

	return img, nil
}

// Unpack splits a 0xAARRGGBB value into its channels.
func Unpack(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(c >> 24),
	}
}
