package loop

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SP4567/PONG-GAME/internal/engine"
	"github.com/SP4567/PONG-GAME/internal/object"
)

// hud styles the text drawn around and over the playfield.
type hud struct {
	score  lipgloss.Style
	hint   lipgloss.Style
	banner lipgloss.Style
	alert  lipgloss.Style
}

func newHUD(r *lipgloss.Renderer, ballColor string) hud {
	return hud{
		score:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(ballColor)),
		hint:   r.NewStyle().Faint(true),
		banner: r.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
		alert:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")).Padding(0, 1),
	}
}

// scoreLine is "YOU n - m CPU"; the score is plain text so it can be measured.
func (h hud) scoreLine(score object.Score) string {
	return h.score.Render(fmt.Sprintf("YOU %s CPU", score.String()))
}

// hints names the controls, leading with whichever one steers the paddle now.
func (h hud) hints(pointer bool) string {
	if pointer {
		return h.hint.Render("mouse steering · ↑/↓ W/S take over · space pause · r reset · q quit")
	}
	return h.hint.Render("↑/↓ W/S mouse · space pause · r reset · q quit")
}

// statusBanner is the text shown over the playfield for the snapshot, or "".
func (h hud) statusBanner(snap engine.Snapshot) string {
	switch {
	case snap.Paused:
		return h.banner.Render("PAUSED · space to resume")
	case snap.State == engine.StateAwaitingServe:
		return h.banner.Render(fmt.Sprintf("serve %s in %.1fs", serveArrow(snap.ServeDir), serveSeconds(snap.ServeIn)))
	}
	return ""
}

func (h hud) shutdownBanner(remaining float64) string {
	return h.alert.Render(fmt.Sprintf("SERVER SHUTTING DOWN · disconnecting in %ds · q to leave now", int(remaining)+1))
}

func (h hud) idleBanner(left time.Duration) string {
	return h.alert.Render(fmt.Sprintf("INACTIVE · disconnecting in %ds · press any key", int(left.Seconds())+1))
}

// serveSeconds rounds up to the next tenth so the countdown never shows 0.0 early.
func serveSeconds(d time.Duration) float64 {
	tenths := (d + 100*time.Millisecond - 1) / (100 * time.Millisecond)
	return float64(tenths) / 10
}

func serveArrow(dir object.Direction) string {
	if dir == object.DirectionLeft {
		return "◀"
	}
	return "▶"
}
