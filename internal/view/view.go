package view

import (
	"fmt"
	"math"
)

// MaxZoomExponent bounds the number of successive halvings; beyond it the
// window extent approaches float64 resolution.
const MaxZoomExponent = 50

// Window is a rectangle of the complex plane. Top is the larger imaginary
// coordinate; the window spans [Left, Left+Width] × [Top-Height, Top].
type Window struct {
	Left         float64
	Top          float64
	Width        float64
	Height       float64
	ZoomExponent int
}

var Default = Window{Left: -2.25, Top: 1.5, Width: 3.0, Height: 3.0}

func (w Window) Right() float64 {
	return w.Left + w.Width
}

func (w Window) Bottom() float64 {
	return w.Top - w.Height
}

func (w Window) Center() (float64, float64) {
	return w.Left + w.Width/2.0, w.Top - w.Height/2.0
}

// SameExtent compares the four numeric fields exactly.
func (w Window) SameExtent(o Window) bool {
	return w.Left == o.Left && w.Top == o.Top && w.Width == o.Width && w.Height == o.Height
}

func (w Window) String() string {
	cx, cy := w.Center()
	return fmt.Sprintf("center=(%g, %g) size=%g×%g zoom=%d", cx, cy, w.Width, w.Height, w.ZoomExponent)
}

// Transform maps pixels onto the current window and keeps that window inside
// the bounds it was created with.
type Transform struct {
	bounds  Window
	current Window
}

func NewTransform(bounds Window) *Transform {
	bounds.ZoomExponent = 0
	return &Transform{bounds: bounds, current: bounds}
}

func (t *Transform) Window() Window {
	return t.current
}

func (t *Transform) Bounds() Window {
	return t.bounds
}

// Sample returns the complex coordinate of the top-left corner of pixel
// (x, y) on a w×h canvas.
func (t *Transform) Sample(x, y, w, h int) (float64, float64) {
	cr := float64(x)*t.current.Width/float64(w) + t.current.Left
	ci := t.current.Top - float64(y)*t.current.Height/float64(h)
	return cr, ci
}

func (t *Transform) clamp(n Window) Window {
	b := t.bounds
	if n.Width > b.Width {
		n.Width = b.Width
	}
	if n.Height > b.Height {
		n.Height = b.Height
	}
	if n.Left < b.Left {
		n.Left = b.Left
	}
	if n.Right() > b.Right() {
		n.Left = b.Right() - n.Width
	}
	if n.Top > b.Top {
		n.Top = b.Top
	}
	if n.Bottom() < b.Bottom() {
		n.Top = b.Bottom() + n.Height
	}
	n.ZoomExponent = min(max(n.ZoomExponent, 0), MaxZoomExponent)
	return n
}

// Constrain clamps n into the bounds and commits it. It reports false, and
// leaves the window and exponent untouched, when the clamped extent equals
// the current one.
func (t *Transform) Constrain(n Window) bool {
	n = t.clamp(n)
	if n.SameExtent(t.current) {
		return false
	}
	t.current = n
	return true
}

// ZoomIn halves the window about (cr, ci). At MaxZoomExponent it refuses and
// reports limited.
func (t *Transform) ZoomIn(cr, ci float64) (changed bool, limited bool) {
	if t.current.ZoomExponent >= MaxZoomExponent {
		return false, true
	}
	width := t.current.Width / 2.0
	height := t.current.Height / 2.0
	return t.Constrain(Window{
		Left:         cr - width/2.0,
		Top:          ci + height/2.0,
		Width:        width,
		Height:       height,
		ZoomExponent: t.current.ZoomExponent + 1,
	}), false
}

func (t *Transform) ZoomOut() bool {
	cr, ci := t.current.Center()
	width := t.current.Width * 2.0
	height := t.current.Height * 2.0
	return t.Constrain(Window{
		Left:         cr - width/2.0,
		Top:          ci + height/2.0,
		Width:        width,
		Height:       height,
		ZoomExponent: t.current.ZoomExponent - 1,
	})
}

// Reset moves back to the bounds at zoom level zero.
func (t *Transform) Reset() bool {
	return t.Constrain(t.bounds)
}

// Pan shifts the window by fractions of its own extent; positive fy moves up.
func (t *Transform) Pan(fx, fy float64) bool {
	n := t.current
	n.Left += fx * n.Width
	n.Top += fy * n.Height
	return t.Constrain(n)
}

// Goto centres a square window of the given size on (cx, cy). The zoom
// exponent is the number of halvings of the bounds that size corresponds to.
func (t *Transform) Goto(cx, cy, size float64) bool {
	if !finite(cx, cy, size) || size <= 0 {
		return false
	}
	exponent := int(math.Round(math.Log2(t.bounds.Width / size)))
	exponent = min(max(exponent, 0), MaxZoomExponent)
	size = max(size, t.bounds.Width/math.Exp2(MaxZoomExponent))
	return t.Constrain(Window{
		Left:         cx - size/2.0,
		Top:          cy + size/2.0,
		Width:        size,
		Height:       size,
		ZoomExponent: exponent,
	})
}

// Restore installs a persisted window without the no-op check. Unusable
// extents fall back to the bounds.
func (t *Transform) Restore(w Window) {
	if !finite(w.Left, w.Top, w.Width, w.Height) || w.Width <= 0 || w.Height <= 0 {
		t.current = t.bounds
		return
	}
	t.current = t.clamp(w)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
