// Package desktop hosts the game in an Ebitengine window: keyboard and mouse in,
// vector-drawn field out.
package desktop

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/SP4567/PONG-GAME/internal/config"
	"github.com/SP4567/PONG-GAME/internal/engine"
	"github.com/SP4567/PONG-GAME/internal/loop"
	"github.com/SP4567/PONG-GAME/internal/object"
)

const (
	paddleRadius   = 4
	noticeDuration = 1500 * time.Millisecond
)

var (
	background = color.RGBA{R: 0x0b, G: 0x0f, B: 0x14, A: 0xff}
	netColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 15}
	textColor  = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	dimColor   = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// Options configures a desktop game.
type Options struct {
	Settings  config.Settings
	Logger    *log.Logger
	Clipboard func(string) error // Receives the score line on C; defaults to the system clipboard
}

// Game implements ebiten.Game. Update drives one scheduler frame; Draw paints the
// snapshot that frame rendered.
type Game struct {
	engine *engine.Engine
	sched  *loop.Scheduler
	field  object.Playfield
	net    object.Net
	start  time.Time
	log    *log.Logger

	face      text.Face
	snap      engine.Snapshot
	scoreText string
	notice    string
	noticeEnd time.Time

	copyText func(string) error
	prevKeys map[ebiten.Key]bool
}

// New builds a game from settings.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	cfg, err := opts.Settings.EngineConfig()
	if err != nil {
		return nil, err
	}
	seed := opts.Settings.Loop.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.New(cfg, engine.Options{
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}

	g := &Game{
		engine:    eng,
		field:     cfg.Field,
		net:       object.Net{Field: cfg.Field},
		start:     time.Now(),
		log:       logger,
		face:      text.NewGoXFace(basicfont.Face7x13),
		snap:      eng.Snapshot(),
		scoreText: object.Score{}.String(),
		copyText:  copyText,
		prevKeys:  map[ebiten.Key]bool{},
	}
	g.sched = loop.NewScheduler(eng, loop.SchedulerOptions{
		MaxDelta: opts.Settings.Loop.MaxDelta,
		Renderer: g,
		Scores:   g,
		Logger:   logger,
	})
	return g, nil
}

// Update reads input and advances the game by the time since the last frame.
func (g *Game) Update() error {
	g.apply(g.readControls(), time.Now())
	return g.sched.Frame(time.Since(g.start))
}

// Render keeps the frame's snapshot for Draw.
func (g *Game) Render(snap engine.Snapshot) error {
	g.snap = snap
	return nil
}

// ShowScore updates the scoreboard text.
func (g *Game) ShowScore(score object.Score) {
	g.scoreText = score.String()
}

// Layout fixes the logical screen to the playfield; Ebitengine scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.field.Width), int(g.field.Height)
}

// Draw paints the net, rounded paddles, ball and scoreboard.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, y := range g.net.Dashes() {
		vector.FillRect(screen, float32(g.net.X()), float32(y), object.NetWidth, object.NetDash, netColor, false)
	}

	drawPaddle(screen, g.snap.Left)
	drawPaddle(screen, g.snap.Right)

	b := g.snap.Ball
	vector.FillCircle(screen, float32(b.X), float32(b.Y), float32(b.R), b.Color, true)

	g.drawText(screen, "YOU  "+g.scoreText+"  CPU", g.field.CenterX(), 12, 2, textColor)
	switch {
	case g.snap.Paused:
		g.drawText(screen, "PAUSED", g.field.CenterX(), g.field.CenterY()-20, 3, textColor)
	case time.Now().Before(g.noticeEnd):
		g.drawText(screen, g.notice, g.field.CenterX(), g.field.Height-40, 1, dimColor)
	}
	g.drawText(screen, "W/S or arrows, mouse - space pause - R reset - C copy score", g.field.CenterX(), g.field.Height-20, 1, dimColor)
}

// drawPaddle fills a rounded rectangle the way canvas arcTo corners do.
func drawPaddle(screen *ebiten.Image, p object.Paddle) {
	x, y := float32(p.X), float32(p.Y)
	w, h := float32(p.W), float32(p.H)

	var path vector.Path
	path.MoveTo(x+paddleRadius, y)
	path.ArcTo(x+w, y, x+w, y+h, paddleRadius)
	path.ArcTo(x+w, y+h, x, y+h, paddleRadius)
	path.ArcTo(x, y+h, x, y, paddleRadius)
	path.ArcTo(x, y, x+w, y, paddleRadius)
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(p.Color)
	vector.FillPath(screen, &path, &vector.FillOptions{}, opts)
}

// drawText centers s on x with its top at y, scaled up from the bitmap font.
func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}
