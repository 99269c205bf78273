package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbrot/pkg/plot"
	"github.com/willbeason/mandelbrot/pkg/render"
)

type renderFlags struct {
	windowFlags

	out           string
	width, height int
	sampling      string
}

func renderCmd() *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a window of the set to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, f)
		},
	}

	fs := cmd.Flags()
	f.add(fs)
	fs.StringVarP(&f.out, "out", "o", "out", "directory to write the image to")
	fs.IntVar(&f.width, "width", 0, "output width in pixels, 0 for one pixel per cell")
	fs.IntVar(&f.height, "height", 0, "output height in pixels, 0 for one pixel per cell")
	fs.StringVar(&f.sampling, "sampling", plot.Direct.String(), "how cells become pixels: direct or box")

	return cmd
}

func runRender(cmd *cobra.Command, f *renderFlags) error {
	cfg, err := f.config(cmd.Flags())
	if err != nil {
		return err
	}

	sampling, err := plot.ParseSampling(f.sampling)
	if err != nil {
		return err
	}

	r, err := render.New(cfg)
	if err != nil {
		return err
	}

	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	xPixels, yPixels := r.Grid().Size()
	fmt.Println("rendering", xPixels, "x", yPixels, "cells")

	start := time.Now()
	err = r.Render(cmd.Context(), nil)
	if err != nil {
		return err
	}
	fmt.Println("rendered in", time.Since(start))

	img, err := r.Image(f.width, f.height, sampling)
	if err != nil {
		return err
	}

	err = os.MkdirAll(f.out, os.ModePerm)
	if err != nil {
		return err
	}

	path := filepath.Join(f.out, fmt.Sprintf("%s.png", time.Now().Format("20060102150405")))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	err = png.Encode(out, img)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	fmt.Println("wrote", path)

	return out.Close()
}
