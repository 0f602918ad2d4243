package object

// Net dash layout, in logical units.
const (
	NetDash  = 14
	NetGap   = 10
	NetWidth = 2
)

// Net is the dashed center line. It is decoration only and never collides.
type Net struct {
	Field Playfield
}

// Dashes returns the top edge of every dash from top to bottom.
func (n Net) Dashes() []float64 {
	var ys []float64
	for y := 0.0; y < n.Field.Height; y += NetDash + NetGap {
		ys = append(ys, y)
	}
	return ys
}

// X returns the left edge of the net.
func (n Net) X() float64 {
	return n.Field.CenterX() - NetWidth/2
}

// Draw shades each dash so paddles and ball stay readable on top of it.
func (n Net) Draw(ctx DrawContext) error {
	for _, y := range n.Dashes() {
		ctx.Canvas.ShadeRect(n.X(), y, NetWidth, NetDash)
	}
	return nil
}
