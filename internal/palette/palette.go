package palette

import (
	"fmt"
	"image/color"
)

const step = 5

// Inside is the colour of samples that never escaped.
var Inside = color.RGBA{0, 0, 0, 255}

// Default is built once at startup and shared read-only.
var Default = New()

// Table is an immutable colour ramp indexed by iteration count.
type Table struct {
	colors []color.RGBA
}

// New builds three interleaved gradients (red→yellow, green→cyan,
// blue→magenta) followed by the terminal in-set colour.
func New() *Table {
	colors := make([]color.RGBA, 0, 3*(255/step+1)+1)
	for i := 0; i <= 255; i += step {
		c := uint8(i)
		colors = append(colors,
			color.RGBA{255, c, 0, 255},
			color.RGBA{0, 255, c, 255},
			color.RGBA{c, 0, 255, 255},
		)
	}
	colors = append(colors, Inside)
	return &Table{colors: colors}
}

func (t *Table) Len() int {
	return len(t.colors)
}

// MaxIterations is the escape-time cap that maps onto the last entry.
func (t *Table) MaxIterations() int {
	return len(t.colors) - 1
}

// ColorAt panics when index is outside [0, Len()).
func (t *Table) ColorAt(index int) color.RGBA {
	if index < 0 || index >= len(t.colors) {
		panic(fmt.Sprintf("palette: index %d out of range [0,%d)", index, len(t.colors)))
	}
	return t.colors[index]
}
