package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Pixel intensities. A solid pixel always wins over a faint one in the same cell.
const (
	pixelEmpty uint8 = iota
	pixelFaint
	pixelSolid
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Game code draws in logical playfield coordinates; the canvas scales them to the
// terminal cells it was sized for.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []uint8 // Flat slice: [y * termWidth + x]
	prev           []rune  // Last rune written per cell, 0 = unknown

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw on the next Render.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint8, subPixelHeight*termWidth)
		c.prev = make([]rune, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas. What is already on the terminal is kept
// and diffed against on the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the terminal was cleared
// or text was written over the canvas area.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// MarkTextDirty forgets what the canvas last wrote under length cells starting at the
// 1-based terminal position (col, row), so text drawn over the canvas there is
// overwritten by the next Render.
func (c *Canvas) MarkTextDirty(col, row, length int) {
	r := row - 1 - c.offsetRow
	if r < 0 || r >= c.termHeight {
		return
	}
	start := col - 1 - c.offsetCol
	for x := max(start, 0); x < start+length && x < c.termWidth; x++ {
		c.prev[r*c.termWidth+x] = 0
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, level uint8) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		idx := y*c.termWidth + x
		if level > c.pixels[idx] {
			c.pixels[idx] = level
		}
	}
}

// Set sets a solid pixel at logical coordinates.
func (c *Canvas) Set(x, y float64) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), pixelSolid)
}

// FillRect fills a logical rectangle. Anything with a positive size covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.fillRect(x, y, w, h, pixelSolid)
}

// ShadeRect fills a logical rectangle with light shading (rendered as ░ unless a
// solid pixel shares the cell).
func (c *Canvas) ShadeRect(x, y, w, h float64) {
	c.fillRect(x, y, w, h, pixelFaint)
}

func (c *Canvas) fillRect(x, y, w, h float64, level uint8) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, level)
		}
	}
}

// pixelSpan maps the logical interval [start, start+size) to a half-open pixel range.
func pixelSpan(start, size, scale float64) (int, int) {
	p0 := int(math.Floor(start * scale))
	p1 := int(math.Ceil((start + size) * scale))
	if p1 <= p0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// FillCircle fills a logical circle. Pixels whose centers fall inside the circle are set;
// a circle smaller than one pixel still sets the pixel under its center.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	x0, x1 := pixelSpan(cx-r, 2*r, c.scaleX)
	y0, y1 := pixelSpan(cy-r, 2*r, c.scaleY)
	set := false
	for py := y0; py < y1; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := x0; px < x1; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			dx, dy := lx-cx, ly-cy
			if dx*dx+dy*dy <= r*r {
				c.setPixel(px, py, pixelSolid)
				set = true
			}
		}
	}
	if !set {
		c.Set(cx, cy)
	}
}

// cellRune picks the character for a terminal cell from its two sub-pixels.
func cellRune(top, bottom uint8) rune {
	switch {
	case top == pixelSolid && bottom == pixelSolid:
		return BlockFull
	case top == pixelSolid:
		return BlockUpperHalf
	case bottom == pixelSolid:
		return BlockLowerHalf
	case top == pixelFaint || bottom == pixelFaint:
		return BlockLight
	default:
		return BlockEmpty
	}
}

// Render outputs the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			ch := cellRune(c.pixels[topOffset+col], c.pixels[bottomOffset+col])
			idx := row*c.termWidth + col
			if c.prev[idx] == ch {
				continue
			}
			c.prev[idx] = ch
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// RenderBorder draws a box border around the canvas area when the offsets leave room
// for it on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row),
// offsets included.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 1-based terminal position (as reported by mouse events)
// to the logical coordinates of the cell's center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}

// Cell returns the character the canvas currently holds for a 0-based cell.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return BlockEmpty
	}
	return cellRune(c.pixels[row*2*c.termWidth+col], c.pixels[(row*2+1)*c.termWidth+col])
}
