package loop

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SP4567/PONG-GAME/internal/engine"
	loopconfig "github.com/SP4567/PONG-GAME/internal/loop/config"
	"github.com/SP4567/PONG-GAME/internal/object"
)

// textArea is where a line of text was written, in 1-based terminal cells.
type textArea struct {
	col, row, width int
}

// layout fits the playfield's aspect ratio into the terminal below the HUD row,
// leaving room for the border, and centers it.
func layout(termWidth, termHeight int, field object.Playfield) (cols, rows, offsetCol, offsetRow int) {
	availW := min(termWidth, loopconfig.MaxTermWidth) - 2*loopconfig.BorderCells
	availH := termHeight - loopconfig.HUDRows - 2*loopconfig.BorderCells

	// Half blocks make a cell two pixels tall, so pixels are roughly square.
	cols = max(availW, 1)
	rows = int(float64(cols) * field.Height / field.Width / 2)
	if rows > availH {
		rows = availH
		cols = int(float64(rows) * 2 * field.Width / field.Height)
	}
	cols = max(cols, 1)
	rows = max(rows, 1)

	offsetCol = max((termWidth-cols)/2, 0)
	offsetRow = loopconfig.HUDRows + loopconfig.BorderCells + max((availH-rows)/2, 0)
	return cols, rows, offsetCol, offsetRow
}

// updateScreen checks for terminal resize and re-lays out the canvas.
func (h *host) updateScreen() {
	termWidth, termHeight, err := h.termSize()
	if err != nil {
		return
	}
	termWidth = max(termWidth, loopconfig.MinTermWidth)
	termHeight = max(termHeight, loopconfig.MinTermRows)
	cols, rows, offsetCol, offsetRow := layout(termWidth, termHeight, h.net.Field)

	if termWidth != h.termWidth || termHeight != h.termHeight ||
		cols != h.canvas.TerminalWidth() || rows != h.canvas.TerminalHeight() {
		h.frame.ClearScreen()
		h.canvas.ForceRedraw()
		h.borderDirty = true
		h.banner = textArea{}
		h.termWidth = termWidth
		h.termHeight = termHeight
	}

	h.canvas.Resize(cols, rows)
	h.canvas.SetOffset(offsetCol, offsetRow)
}

// Render draws the snapshot: playfield through the canvas diff, then the HUD on top.
func (h *host) Render(snap engine.Snapshot) error {
	h.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: h.canvas,
		Writer: h.frame,
	}
	for _, obj := range []object.Drawable{h.net, snap.Left, snap.Right, snap.Ball} {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}

	// The previous banner covered canvas cells; let the diff repaint them.
	if h.banner.width > 0 {
		h.canvas.MarkTextDirty(h.banner.col, h.banner.row, h.banner.width)
		h.banner = textArea{}
	}
	if err := h.canvas.Render(h.frame); err != nil {
		return err
	}
	if h.borderDirty {
		if err := h.canvas.RenderBorder(h.frame); err != nil {
			return err
		}
		h.borderDirty = false
	}

	if err := h.drawHUD(ctx, snap); err != nil {
		return err
	}
	return h.frame.Flush()
}

// drawHUD writes the score line, the key hints and any banner.
func (h *host) drawHUD(ctx object.DrawContext, snap engine.Snapshot) error {
	centerCol := h.termWidth/2 + 1
	if err := object.CenteredText(centerCol, 1, h.scoreLine, lipgloss.Width(h.scoreLine)).Draw(ctx); err != nil {
		return err
	}

	bottom := h.canvas.OffsetRow() + h.canvas.TerminalHeight() + loopconfig.BorderCells
	if bottom < h.termHeight {
		hints := h.hud.hints(snap.Intent.HasPointer)
		if hints != h.hintLine {
			h.frame.ClearRow(h.termHeight)
			h.hintLine = hints
		}
		if w := lipgloss.Width(hints); w <= h.termWidth {
			if err := object.CenteredText(centerCol, h.termHeight, hints, w).Draw(ctx); err != nil {
				return err
			}
		}
	}

	banner := h.currentBanner(snap)
	if banner == "" {
		return nil
	}
	width := lipgloss.Width(banner)
	t := object.CenteredText(
		h.canvas.OffsetCol()+h.canvas.TerminalWidth()/2+1,
		h.canvas.OffsetRow()+h.canvas.TerminalHeight()/2+1,
		banner, width,
	)
	h.banner = textArea{col: t.X, row: t.Y, width: width}
	return t.Draw(ctx)
}

// currentBanner picks the most urgent message to show over the playfield.
func (h *host) currentBanner(snap engine.Snapshot) string {
	switch {
	case h.shuttingDown:
		return h.hud.shutdownBanner(h.shutdownTimer)
	case h.idle:
		return h.hud.idleBanner(loopconfig.InactivityDisconnectUser - time.Since(h.lastInput))
	default:
		return h.hud.statusBanner(snap)
	}
}
