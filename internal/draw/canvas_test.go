package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

// newTestCanvas maps a 100x50 logical field onto 10 columns and 5 rows (10 sub-pixel rows),
// so one pixel is 10x5 logical units.
func newTestCanvas() *Canvas {
	return NewScaledCanvas(10, 5, 100, 50)
}

func TestFillRectHalfBlocks(t *testing.T) {
	c := newTestCanvas()

	c.FillRect(0, 0, 10, 5)
	if got := c.Cell(0, 0); got != BlockUpperHalf {
		t.Fatalf("expected upper half block, got %q", got)
	}

	c.FillRect(0, 0, 10, 10)
	if got := c.Cell(0, 0); got != BlockFull {
		t.Fatalf("expected full block, got %q", got)
	}

	c.FillRect(20, 5, 10, 5)
	if got := c.Cell(2, 0); got != BlockLowerHalf {
		t.Fatalf("expected lower half block, got %q", got)
	}
}

func TestFillRectTinyStillCoversAPixel(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(51, 21, 0.5, 0.5)
	if got := c.Cell(5, 2); got == BlockEmpty {
		t.Fatal("expected a sub-pixel rectangle to still be visible")
	}
}

func TestShadeRectLosesToSolid(t *testing.T) {
	c := newTestCanvas()
	c.ShadeRect(40, 0, 10, 50)
	if got := c.Cell(4, 3); got != BlockLight {
		t.Fatalf("expected light shade, got %q", got)
	}
	c.FillRect(40, 30, 10, 10)
	if got := c.Cell(4, 3); got != BlockFull {
		t.Fatalf("expected solid pixel to win, got %q", got)
	}
}

func TestFillCircle(t *testing.T) {
	c := newTestCanvas()
	c.FillCircle(55, 25, 1)
	if got := c.Cell(5, 2); got == BlockEmpty {
		t.Fatal("expected a tiny circle to set the pixel under its center")
	}

	c.Clear()
	c.FillCircle(50, 25, 15)
	set := 0
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			if c.Cell(col, row) != BlockEmpty {
				set++
			}
		}
	}
	if set < 4 {
		t.Fatalf("expected a radius-15 circle to cover several cells, got %d", set)
	}
	if got := c.Cell(0, 0); got != BlockEmpty {
		t.Fatalf("expected far corner to stay empty, got %q", got)
	}
}

func TestRenderOnlyWritesChangedCells(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer

	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\033["); got != 50 {
		t.Fatalf("first render should write all 50 cells, wrote %d", got)
	}

	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame should write nothing, wrote %q", buf.String())
	}

	c.FillRect(0, 0, 10, 10)
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[1;1H█" {
		t.Fatalf("expected a single changed cell, got %q", got)
	}

	c.ForceRedraw()
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\033["); got != 50 {
		t.Fatalf("forced redraw should write all cells, wrote %d", got)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(2, 1)
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}

	// Text from column 9 to 14 on row 3 covers canvas cells 6..9 of the second row.
	c.MarkTextDirty(9, 3, 6)
	c.MarkTextDirty(1, 40, 5)
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	want := "\033[3;9H \033[3;10H \033[3;11H \033[3;12H "
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTerminalLogicalRoundTrip(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(3, 1)

	col, row := c.LogicalToTerminal(55, 25)
	if col != 9 || row != 4 {
		t.Fatalf("LogicalToTerminal(55, 25) = (%d, %d), want (9, 4)", col, row)
	}

	x, y := c.TerminalToLogical(col, row)
	if math.Abs(x-55) > 1e-9 || math.Abs(y-25) > 1e-9 {
		t.Fatalf("TerminalToLogical(%d, %d) = (%v, %v), want (55, 25)", col, row, x, y)
	}
}
