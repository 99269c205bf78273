package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/willbeason/mandelbrot/pkg/plot"
	"github.com/willbeason/mandelbrot/pkg/render"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandelbrot",
		Short: "Render the Mandelbrot set with the escape-time algorithm",
	}

	cmd.AddCommand(renderCmd(), serveCmd())

	return cmd
}

// windowFlags are the flags shared by every command that renders.
type windowFlags struct {
	cfg    render.Config
	region string
}

func (f *windowFlags) add(fs *pflag.FlagSet) {
	f.cfg = render.DefaultConfig()
	f.cfg.AddFlags(fs)
	fs.StringVar(&f.region, "region", "", "named window to render, overridden by explicit edge flags")
}

// config resolves the named region, if any, then reapplies any edge flag the
// user set explicitly.
func (f *windowFlags) config(fs *pflag.FlagSet) (render.Config, error) {
	cfg := f.cfg
	if f.region == "" {
		return cfg, nil
	}

	w, err := render.Region(f.region)
	if err != nil {
		return render.Config{}, err
	}

	edges := []struct {
		flag string
		dst  *float64
		src  float64
	}{
		{"min-x", &cfg.MinX, w.MinX},
		{"max-x", &cfg.MaxX, w.MaxX},
		{"min-y", &cfg.MinY, w.MinY},
		{"max-y", &cfg.MaxY, w.MaxY},
	}
	for _, e := range edges {
		if !fs.Changed(e.flag) {
			*e.dst = e.src
		}
	}

	// Named regions are much smaller than the default window.
	if !fs.Changed("pixel-size") {
		cfg.PixelSize = regionPixelSize(w)
	}

	return cfg, nil
}

// regionPixelSize fits 600 pixels across w.
func regionPixelSize(w plot.Window) float64 {
	return (w.MaxX - w.MinX) / 600
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		stop()
		os.Exit(1)
	}
}
