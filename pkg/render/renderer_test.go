package render

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/plot"
)

func smallConfig(workers int) Config {
	cfg := DefaultConfig()
	cfg.PixelSize = 0.05
	cfg.MaxIterations = 50
	cfg.Workers = workers
	return cfg
}

func mustNew(t *testing.T, cfg Config) *Renderer {
	t.Helper()

	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRender_MatchesSerial(t *testing.T) {
	for _, workers := range []int{1, 4, 0} {
		cfg := smallConfig(workers)
		r := mustNew(t, cfg)

		if err := r.Render(context.Background(), nil); err != nil {
			t.Fatalf("Render with %d workers: %v", workers, err)
		}

		e, err := escape.New(cfg.MaxIterations, cfg.Limit)
		if err != nil {
			t.Fatal(err)
		}

		g := r.Grid()
		xPixels, yPixels := g.Size()
		for y := 0; y < yPixels; y++ {
			for x := 0; x < xPixels; x++ {
				want := Color(e.Evaluate(g.CellCenter(x, y)), cfg.MaxIterations)
				if got := uint32(g.Cell(x, y)); got != want {
					t.Fatalf("%d workers: cell (%d, %d) = %#x, want %#x", workers, x, y, got, want)
				}
			}
		}
	}
}

func TestRender_Rows(t *testing.T) {
	r := mustNew(t, smallConfig(3))
	xPixels, yPixels := r.Grid().Size()

	seen := make(map[int]bool)
	err := r.Render(context.Background(), func(row Row) {
		if seen[row.Y] {
			t.Errorf("row %d reported twice", row.Y)
		}
		seen[row.Y] = true

		if len(row.Values) != xPixels {
			t.Errorf("row %d has %d values, want %d", row.Y, len(row.Values), xPixels)
		}
		for x, v := range row.Values {
			if got := uint32(r.Grid().Cell(x, row.Y)); got != v {
				t.Errorf("row %d value %d = %#x, grid has %#x", row.Y, x, v, got)
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(seen) != yPixels {
		t.Errorf("got %d rows, want %d", len(seen), yPixels)
	}
}

func TestRender_Cancelled(t *testing.T) {
	r := mustNew(t, smallConfig(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := 0
	err := r.Render(ctx, func(Row) { rows++ })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render error = %v, want context.Canceled", err)
	}

	_, yPixels := r.Grid().Size()
	if rows >= yPixels {
		t.Errorf("cancelled render finished all %d rows", rows)
	}
}

func TestNew_Invalid(t *testing.T) {
	tcs := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "negative workers", modify: func(c *Config) { c.Workers = -1 }, want: ErrInvalidConfig},
		{name: "negative iterations", modify: func(c *Config) { c.MaxIterations = -1 }, want: escape.ErrInvalidConfig},
		{name: "negative limit", modify: func(c *Config) { c.Limit = -2 }, want: escape.ErrInvalidConfig},
		{name: "zero pixel size", modify: func(c *Config) { c.PixelSize = 0 }, want: plot.ErrInvalidConfig},
		{name: "inverted window", modify: func(c *Config) { c.MinX, c.MaxX = c.MaxX, c.MinX }, want: plot.ErrInvalidConfig},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)

			_, err := New(cfg)
			if !errors.Is(err, tc.want) {
				t.Errorf("New error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestImage(t *testing.T) {
	r := mustNew(t, smallConfig(0))
	if err := r.Render(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	xPixels, yPixels := r.Grid().Size()

	img, err := r.Image(0, 0, plot.Direct)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != xPixels || b.Dy() != yPixels {
		t.Fatalf("image is %v, want %dx%d", b, xPixels, yPixels)
	}

	// The first image row is the top of the window.
	want := Unpack(uint32(r.Grid().Cell(0, yPixels-1)))
	if got := img.RGBAAt(0, 0); got != want {
		t.Errorf("pixel (0, 0) = %v, want %v", got, want)
	}

	small, err := r.Image(xPixels/2, yPixels/2, plot.BoxAverage)
	if err != nil {
		t.Fatal(err)
	}
	if b := small.Bounds(); b.Dx() != xPixels/2 || b.Dy() != yPixels/2 {
		t.Errorf("downsampled image is %v", b)
	}

	if _, err := r.Image(xPixels+1, 0, plot.Direct); !errors.Is(err, plot.ErrInvalidConfig) {
		t.Errorf("oversized image error = %v, want plot.ErrInvalidConfig", err)
	}
}

func TestColor(t *testing.T) {
	if got := Color(escape.Bounded(), 100); got != Inside {
		t.Errorf("bounded color = %#x, want %#x", got, Inside)
	}
	if got := Color(escape.DivergedAt(0), 100); got != 0xffffffff {
		t.Errorf("immediate escape color = %#x, want white", got)
	}

	previous := Color(escape.DivergedAt(1), 100)
	for i := 2; i < 100; i++ {
		c := Color(escape.DivergedAt(i), 100)
		if c > previous {
			t.Errorf("color at %d is brighter than at %d", i, i-1)
		}
		if c>>24 != 0xff {
			t.Errorf("color at %d is not opaque", i)
		}
		previous = c
	}
}

func TestUnpack(t *testing.T) {
	c := Unpack(0x80112233)
	if c.A != 0x80 || c.R != 0x11 || c.G != 0x22 || c.B != 0x33 {
		t.Errorf("Unpack = %+v", c)
	}
}

func TestRegion(t *testing.T) {
	for _, name := range RegionNames() {
		w, err := Region(name)
		if err != nil {
			t.Fatal(err)
		}
		if w.MaxX <= w.MinX || w.MaxY <= w.MinY {
			t.Errorf("region %q is empty: %+v", name, w)
		}
	}

	if _, err := Region("nowhere"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown region error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfig_AddFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)

	err := fs.Parse([]string{"--iterations=250", "--min-x=-1.5", "-j", "3"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MaxIterations != 250 || cfg.MinX != -1.5 || cfg.Workers != 3 {
		t.Errorf("parsed config = %+v", cfg)
	}
	if cfg.Limit != DefaultLimit {
		t.Errorf("unset limit = %v, want default %v", cfg.Limit, DefaultLimit)
	}
}
