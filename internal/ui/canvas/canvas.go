package canvas

import (
	"image"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
)

// upperHalf is drawn with the top pixel as foreground and the bottom pixel
// as background, so one cell shows two pixel rows.
const upperHalf = "▀"

// Side returns the largest power of two that fits a width×height terminal
// once chrome rows are reserved, counting two pixels per cell row. It is 0
// when nothing fits.
func Side(width, height, chrome int) int {
	limit := min(width, 2*(height-chrome))
	if limit < 1 {
		return 0
	}
	side := 1
	for side*2 <= limit {
		side *= 2
	}
	return side
}

// Rows is the number of terminal rows needed for a canvas of side pixels.
func Rows(side int) int {
	return (side + 1) / 2
}

// PixelAt maps a cell of the canvas to the pixel under its upper half.
func PixelAt(col, row int) (int, int) {
	return col, 2 * row
}

func Draw(scr uv.Screen, img *image.RGBA) {
	b := img.Bounds()
	area := scr.Bounds()
	for row := 0; row < area.Dy() && 2*row < b.Dy(); row++ {
		y := b.Min.Y + 2*row
		for col := 0; col < area.Dx() && col < b.Dx(); col++ {
			x := b.Min.X + col
			cell := &uv.Cell{
				Content: upperHalf,
				Width:   1,
				Style:   uv.Style{Fg: img.RGBAAt(x, y)},
			}
			if y+1 < b.Max.Y {
				cell.Style.Bg = img.RGBAAt(x, y+1)
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}

func Render(img *image.RGBA) string {
	cols, rows := img.Bounds().Dx(), Rows(img.Bounds().Dy())
	if cols == 0 || rows == 0 {
		return ""
	}
	buf := uv.NewScreenBuffer(cols, rows)
	Draw(buf, img)
	return strings.ReplaceAll(buf.Render(), "\r", "")
}
