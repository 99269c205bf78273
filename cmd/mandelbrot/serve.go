package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbrot/pkg/plot"
	"github.com/willbeason/mandelbrot/pkg/render"
)

type serveFlags struct {
	windowFlags

	addr string
}

func serveCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered images over HTTP and stream rows over websocket",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
	}

	fs := cmd.Flags()
	f.add(fs)
	fs.StringVar(&f.addr, "addr", ":8080", "address to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := f.config(cmd.Flags())
	if err != nil {
		return err
	}

	// Fail before listening if the window is unusable.
	if _, err := render.New(cfg); err != nil {
		return err
	}

	cmd.SilenceUsage = true

	srv := &http.Server{
		Addr:              f.addr,
		Handler:           newServeMux(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("listening on http://localhost%s", f.addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("http server: %w", err)
	case <-cmd.Context().Done():
	}

	log.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = srv.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServeMux serves a PNG of the window at /image.png and streams rows of
// the same window as JSON messages at /ws. Both accept ?region= to pick a
// named window instead.
func newServeMux(cfg render.Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/image.png", imageHandler(cfg))
	mux.HandleFunc("/ws", rowsHandler(cfg))
	return mux
}

func requestConfig(cfg render.Config, r *http.Request) (render.Config, error) {
	name := r.URL.Query().Get("region")
	if name == "" {
		return cfg, nil
	}

	w, err := render.Region(name)
	if err != nil {
		return render.Config{}, err
	}

	cfg.Window = w
	cfg.PixelSize = regionPixelSize(w)

	return cfg, nil
}

func imageHandler(cfg render.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := requestConfig(cfg, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		renderer, err := render.New(cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = renderer.Render(r.Context(), nil)
		if err != nil {
			log.Printf("render %s: %v", r.URL, err)
			return
		}

		img, err := renderer.Image(0, 0, plot.Direct)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		err = png.Encode(w, img)
		if err != nil {
			log.Printf("encode %s: %v", r.URL, err)
		}
	}
}

// rowsHandler renders on every connection and writes each render.Row as it
// finishes. The render stops if the client goes away.
func rowsHandler(cfg render.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := requestConfig(cfg, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		renderer, err := render.New(cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		// Reading is required to notice the client closing.
		ctx := c.CloseRead(r.Context())
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		log.Printf("streaming rows to %s", r.RemoteAddr)

		var writeErr error
		err = renderer.Render(ctx, func(row render.Row) {
			if writeErr != nil {
				return
			}
			writeErr = wsjson.Write(ctx, c, row)
			if writeErr != nil {
				cancel()
			}
		})

		switch {
		case writeErr != nil:
			log.Printf("write to %s: %v", r.RemoteAddr, writeErr)
		case err != nil:
			log.Printf("render for %s: %v", r.RemoteAddr, err)
		default:
			c.Close(websocket.StatusNormalClosure, "render finished")
		}
	}
}
