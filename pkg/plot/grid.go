// Package plot maps a rectangular window of the plane onto a fixed grid of
// integer cells.
//
// Cells are addressed either by plane coordinates, through SetValue and
// Value, or by index, through Cell and SetCell. Row j holds the cells whose
// imaginary part lies in [MinY + j*pixelSize, MinY + (j+1)*pixelSize).
package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/transforms"
)

// MaxCells caps the number of cells a single grid may hold.
const MaxCells = 1 << 28

var ErrInvalidConfig = errors.New("invalid plot configuration")

// Window is a rectangle of the plane.
type Window struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether (x, y) is strictly inside w.
func (w Window) Contains(x, y float64) bool {
	return w.MinX < x && x < w.MaxX && w.MinY < y && y < w.MaxY
}

// Grid is a dense grid of integer cells over a Window.
//
// The dimensions are fixed at construction. Writes to different cells may
// happen concurrently; writes to the same cell must not.
type Grid struct {
	pixelSize float64
	window    Window

	xPixels, yPixels int

	// values is row-major: cell (i, j) is values[j*xPixels+i].
	values []int

	// toPlane maps a cell index pair to the center of that cell.
	toPlane transforms.Linear
}

// New allocates a zeroed grid of floor((maxX-minX)/pixelSize) by
// floor((maxY-minY)/pixelSize) cells.
func New(pixelSize, minX, maxX, minY, maxY float64) (*Grid, error) {
	for _, v := range []float64{pixelSize, minX, maxX, minY, maxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite parameter %v", ErrInvalidConfig, v)
		}
	}

	if pixelSize <= 0 {
		return nil, fmt.Errorf("%w: pixelSize %v must be positive", ErrInvalidConfig, pixelSize)
	}
	if maxX <= minX {
		return nil, fmt.Errorf("%w: maxX %v must exceed minX %v", ErrInvalidConfig, maxX, minX)
	}
	if maxY <= minY {
		return nil, fmt.Errorf("%w: maxY %v must exceed minY %v", ErrInvalidConfig, maxY, minY)
	}

	xCells := math.Floor((maxX - minX) / pixelSize)
	yCells := math.Floor((maxY - minY) / pixelSize)

	if xCells < 1 || yCells < 1 {
		return nil, fmt.Errorf("%w: window %vx%v is smaller than one pixel of size %v",
			ErrInvalidConfig, maxX-minX, maxY-minY, pixelSize)
	}
	if xCells*yCells > MaxCells {
		return nil, fmt.Errorf("%w: %vx%v cells exceeds the limit of %d",
			ErrInvalidConfig, xCells, yCells, MaxCells)
	}

	xPixels, yPixels := int(xCells), int(yCells)

	return &Grid{
		pixelSize: pixelSize,
		window:    Window{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY},
		xPixels:   xPixels,
		yPixels:   yPixels,
		values:    make([]int, xPixels*yPixels),
		toPlane: transforms.Linear{
			Multiply: plane.New(pixelSize, 0),
			Add:      plane.New(minX+0.5*pixelSize, minY+0.5*pixelSize),
		},
	}, nil
}

// NewDefault returns a grid of 100x100 unit cells over [0, 100] on both axes.
func NewDefault() *Grid {
	g, err := New(1, 0, 100, 0, 100)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (int, int) {
	return g.xPixels, g.yPixels
}

func (g *Grid) PixelSize() float64 {
	return g.pixelSize
}

func (g *Grid) Window() Window {
	return g.window
}

// index returns the cell holding (x, y), or false if (x, y) is outside the
// window or past the last whole cell.
func (g *Grid) index(x, y float64) (int, bool) {
	if !g.window.Contains(x, y) {
		return 0, false
	}

	i := int(math.Floor((x - g.window.MinX) / g.pixelSize))
	j := int(math.Floor((y - g.window.MinY) / g.pixelSize))

	if i >= g.xPixels || j >= g.yPixels {
		return 0, false
	}

	return j*g.xPixels + i, true
}

// SetValue writes value into the cell containing (x, y).
// Points outside the window are dropped.
func (g *Grid) SetValue(x, y float64, value int) {
	idx, ok := g.index(x, y)
	if !ok {
		return
	}
	g.values[idx] = value
}

// Value returns the cell containing (x, y), and false if there is none.
func (g *Grid) Value(x, y float64) (int, bool) {
	idx, ok := g.index(x, y)
	if !ok {
		return 0, false
	}
	return g.values[idx], true
}

// Cell returns cell (i, j). It panics if the index is out of range.
func (g *Grid) Cell(i, j int) int {
	g.checkIndex(i, j)
	return g.values[j*g.xPixels+i]
}

// SetCell writes cell (i, j). It panics if the index is out of range.
func (g *Grid) SetCell(i, j, value int) {
	g.checkIndex(i, j)
	g.values[j*g.xPixels+i] = value
}

// CellCenter is the point of the plane at the center of cell (i, j).
func (g *Grid) CellCenter(i, j int) plane.Complex {
	return g.toPlane.Next(plane.New(float64(i), float64(j)))
}

func (g *Grid) checkIndex(i, j int) {
	if i < 0 || i >= g.xPixels || j < 0 || j >= g.yPixels {
		panic(fmt.Sprintf("plot: cell (%d, %d) out of range %dx%d", i, j, g.xPixels, g.yPixels))
	}
}
