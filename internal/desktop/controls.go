package desktop

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// controls is one frame of window input.
type controls struct {
	up, down bool // Held
	pause    bool // Pressed this frame
	reset    bool // Pressed this frame
	copy     bool // Pressed this frame

	cursorX, cursorY int
	cursorIn         bool // Cursor over the window and the window focused
}

// readControls samples the keyboard and mouse. Toggle keys are edge-triggered.
func (g *Game) readControls() controls {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	c := controls{
		up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		pause: pressed(ebiten.KeySpace),
		reset: pressed(ebiten.KeyR),
		copy:  pressed(ebiten.KeyC),
	}
	g.prevKeys = currentKeys

	c.cursorX, c.cursorY = ebiten.CursorPosition()
	c.cursorIn = ebiten.IsFocused() &&
		c.cursorX >= 0 && c.cursorX < int(g.field.Width) &&
		c.cursorY >= 0 && c.cursorY < int(g.field.Height)
	return c
}

// apply forwards a frame of input to the engine. The mouse steers the paddle while
// it is over the window; leaving the window hands control back to the keys.
func (g *Game) apply(c controls, now time.Time) {
	g.engine.SetDirectional(c.up, c.down)
	if c.cursorIn {
		g.engine.SetPointerTarget(float64(c.cursorY))
	} else {
		g.engine.ClearPointerTarget()
	}

	if c.pause {
		g.engine.TogglePause()
	}
	if c.reset {
		g.engine.Reset()
	}
	if c.copy {
		g.copyScore(now)
	}
}

func (g *Game) copyScore(now time.Time) {
	line := "Pong: YOU " + g.scoreText + " CPU"
	if err := g.copyText(line); err != nil {
		g.log.Warn("copy score", "err", err)
		g.showNotice("clipboard unavailable", now)
		return
	}
	g.showNotice("score copied", now)
}

func (g *Game) showNotice(msg string, now time.Time) {
	g.notice = msg
	g.noticeEnd = now.Add(noticeDuration)
}
