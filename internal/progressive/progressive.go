// Package progressive refines an escape-time image by quadrant subdivision.
//
// A seed pass paints the whole canvas with one sample. Every later pass walks
// the canvas in raster order at the current block size and paints three of
// each block's quadrants; the top-left quadrant keeps its parent's colour
// because it shares the parent's sample. Passes halve the block size until
// blocks are single pixels, at which point every pixel holds the colour of its
// own sample. Work is split into ticks of bounded size so a caller can publish
// the frame and react to commands between ticks.
package progressive

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/idursun/mandelbrot/internal/escape"
	"github.com/idursun/mandelbrot/internal/palette"
)

const DefaultBudget = 512

// Sampler maps a pixel of a w×h canvas to a point of the complex plane.
type Sampler interface {
	Sample(x, y, w, h int) (float64, float64)
}

// Cursor is the resume position of the subdivision scan. A zero BlockSize
// means no seed pass has run since the last reset.
type Cursor struct {
	Left      int
	Top       int
	BlockSize int
}

func (c Cursor) Seeded() bool {
	return c.BlockSize > 0
}

type Renderer struct {
	palette *palette.Table
	budget  int
	cursor  Cursor
}

func New(p *palette.Table, budget int) *Renderer {
	if p == nil {
		p = palette.Default
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Renderer{palette: p, budget: budget}
}

func (r *Renderer) Cursor() Cursor {
	return r.cursor
}

func (r *Renderer) Budget() int {
	return r.budget
}

// Reset discards progress; the next tick must seed.
func (r *Renderer) Reset() {
	r.cursor = Cursor{}
}

// Seed fills the full canvas from its top-left sample and places the cursor
// on the full-canvas block. It reports whether the canvas is already complete
// (a single pixel, or empty).
func (r *Renderer) Seed(fb *image.RGBA, s Sampler) bool {
	w, h := fb.Bounds().Dx(), fb.Bounds().Dy()
	size := max(w, h)
	r.cursor = Cursor{BlockSize: size}
	if size <= 0 {
		return true
	}
	r.fill(fb, s, 0, 0, size)
	return size <= 1
}

// Step processes up to the budget of block operations. It returns early when
// a resolution level completes so the coarser level can be shown, and reports
// done once the block size has dropped to a single pixel.
func (r *Renderer) Step(fb *image.RGBA, s Sampler) bool {
	if !r.cursor.Seeded() {
		return r.Seed(fb, s)
	}
	if r.cursor.BlockSize <= 1 {
		return true
	}
	w, h := fb.Bounds().Dx(), fb.Bounds().Dy()
	for range r.budget {
		c := &r.cursor
		half := c.BlockSize / 2
		r.fill(fb, s, c.Left+half, c.Top, half)
		r.fill(fb, s, c.Left, c.Top+half, half)
		r.fill(fb, s, c.Left+half, c.Top+half, half)

		c.Left += c.BlockSize
		if c.Left < w {
			continue
		}
		c.Left = 0
		c.Top += c.BlockSize
		if c.Top < h {
			continue
		}
		c.Top = 0
		c.BlockSize = half
		return c.BlockSize <= 1
	}
	return false
}

// fill paints the size×size block at (x, y) with the colour of its top-left
// sample. Blocks are clipped to the canvas.
func (r *Renderer) fill(fb *image.RGBA, s Sampler, x, y, size int) {
	b := fb.Bounds()
	w, h := b.Dx(), b.Dy()
	if x >= w || y >= h {
		return
	}
	cr, ci := s.Sample(x, y, w, h)
	n := escape.Iterations(cr, ci, r.palette.MaxIterations())
	rect := image.Rect(x, y, x+size, y+size).Add(b.Min).Intersect(b)
	fillRect(fb, rect, r.palette.ColorAt(n))
}

func fillRect(fb *image.RGBA, rect image.Rectangle, c color.RGBA) {
	if rect.Dx() == 1 && rect.Dy() == 1 {
		fb.SetRGBA(rect.Min.X, rect.Min.Y, c)
		return
	}
	draw.Draw(fb, rect, image.NewUniform(c), image.Point{}, draw.Src)
}
