package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	trailGlyph = '•'
	fineGlyph  = '·' // strokes thinner than half a unit, e.g. the debug grid
)

// TerminalCanvas rasterises the surface onto terminal cells.
// One column covers cellW surface units and one row cellH units.
type TerminalCanvas struct {
	screen       tcell.Screen
	cellW, cellH float64
	background   tcell.Color
	path         []r2.Vec
}

// NewTerminalCanvas creates a canvas on an initialised tcell screen.
func NewTerminalCanvas(screen tcell.Screen, cellW, cellH float64, bg color.RGBA) *TerminalCanvas {
	return &TerminalCanvas{
		screen:     screen,
		cellW:      cellW,
		cellH:      cellH,
		background: tcellColor(bg),
	}
}

// SurfaceSize returns the screen size in surface units.
func (c *TerminalCanvas) SurfaceSize() (width, height float64) {
	cols, rows := c.screen.Size()
	return float64(cols) * c.cellW, float64(rows) * c.cellH
}

// Screen returns the underlying tcell screen.
func (c *TerminalCanvas) Screen() tcell.Screen {
	return c.screen
}

// Show flushes the frame to the terminal.
func (c *TerminalCanvas) Show() {
	c.screen.Show()
}

// Clear fills every cell with the background colour.
func (c *TerminalCanvas) Clear() {
	c.screen.Fill(' ', tcell.StyleDefault.Background(c.background))
}

// BeginPath discards any unstroked path.
func (c *TerminalCanvas) BeginPath() {
	c.path = c.path[:0]
}

// MoveTo starts the path at (x, y).
func (c *TerminalCanvas) MoveTo(x, y float64) {
	c.path = append(c.path[:0], r2.Vec{X: x, Y: y})
}

// LineTo extends the path to (x, y).
func (c *TerminalCanvas) LineTo(x, y float64) {
	c.path = append(c.path, r2.Vec{X: x, Y: y})
}

// Stroke rasterises each path segment into cells.
func (c *TerminalCanvas) Stroke(col color.RGBA, width float64) {
	style := tcell.StyleDefault.Foreground(tcellColor(col)).Background(c.background)
	glyph := rune(trailGlyph)
	if width < 0.5 {
		glyph = fineGlyph
	}

	for i := 1; i < len(c.path); i++ {
		x0, y0 := c.cell(c.path[i-1])
		x1, y1 := c.cell(c.path[i])
		c.plotLine(x0, y0, x1, y1, glyph, style)
	}
	c.path = c.path[:0]
}

// FillText writes text centred on the cell containing (x, y). Size is ignored.
func (c *TerminalCanvas) FillText(text string, x, y, size float64, col color.RGBA) {
	style := tcell.StyleDefault.Foreground(tcellColor(col)).Background(c.background)
	runes := []rune(text)
	cx, cy := c.cell(r2.Vec{X: x, Y: y})
	start := cx - len(runes)/2
	for i, r := range runes {
		c.plot(start+i, cy, r, style)
	}
}

// cell maps a surface point to its terminal cell.
func (c *TerminalCanvas) cell(p r2.Vec) (int, int) {
	return int(math.Floor(p.X / c.cellW)), int(math.Floor(p.Y / c.cellH))
}

// plotLine draws a Bresenham line between two cells.
func (c *TerminalCanvas) plotLine(x0, y0, x1, y1 int, glyph rune, style tcell.Style) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.plot(x0, y0, glyph, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// plot sets one cell, ignoring cells off screen.
func (c *TerminalCanvas) plot(x, y int, glyph rune, style tcell.Style) {
	cols, rows := c.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.screen.SetContent(x, y, glyph, nil, style)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
