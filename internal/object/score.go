package object

import "fmt"

// Score is the running tally. It only grows, except on an explicit reset.
type Score struct {
	Player   int
	Opponent int
}

// Credit awards a point to whoever did not concede on the given side.
func (s *Score) Credit(conceded Side) {
	if conceded == SideLeft {
		s.Opponent++
		return
	}
	s.Player++
}

func (s Score) String() string {
	return fmt.Sprintf("%d - %d", s.Player, s.Opponent)
}
