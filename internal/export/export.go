// Package export renders a window at full resolution without progressive
// refinement and writes it as PNG.
package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/idursun/mandelbrot/internal/escape"
	"github.com/idursun/mandelbrot/internal/logging"
	"github.com/idursun/mandelbrot/internal/palette"
	"github.com/idursun/mandelbrot/internal/view"
)

const DefaultSize = 1024

type Options struct {
	Size    int
	Window  view.Window
	Palette *palette.Table
	// Workers bounds the number of row bands rendered concurrently. Zero means
	// GOMAXPROCS.
	Workers int
}

// Render evaluates every pixel of a Size×Size image of the window. Rows are
// split into bands rendered concurrently; a cancelled context stops the
// remaining bands.
func Render(ctx context.Context, opts Options) (*image.RGBA, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Palette == nil {
		opts.Palette = palette.Default
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Size)

	t := view.NewTransform(view.Default)
	t.Restore(opts.Window)

	size := opts.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	maxIterations := opts.Palette.MaxIterations()
	band := (size + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for top := 0; top < size; top += band {
		bottom := min(top+band, size)
		g.Go(func() error {
			for y := top; y < bottom; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for x := range size {
					cr, ci := t.Sample(x, y, size, size)
					img.SetRGBA(x, y, opts.Palette.ColorAt(escape.Iterations(cr, ci, maxIterations)))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// ToFile renders opts and writes the result to path.
func ToFile(ctx context.Context, path string, opts Options) error {
	img, err := Render(ctx, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logging.Logger().Info("exported png", "path", path, "size", img.Bounds().Dx(), "window", opts.Window)
	return nil
}
