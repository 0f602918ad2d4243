// Package config centralizes the terminal host's fixed parameters.
package config

import "time"

// Frame pacing. The engine itself is frame-rate independent; this only sets how
// often the terminal host polls input and redraws.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal layout, in cells.
const (
	HUDRows      = 1 // Score line above the playfield
	BorderCells  = 1 // Box border on each side of the playfield
	MinTermWidth = 20
	MinTermRows  = 8
	MaxTermWidth = 200 // Larger terminals get a centered, bordered playfield
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show the shutdown notice before disconnecting
)

// Inactivity, for hosted sessions only.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
