package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/SP4567/PONG-GAME/internal/config"
	"github.com/SP4567/PONG-GAME/internal/desktop"
)

func main() {
	logger, err := config.NewLogger(os.Stderr, "pong-desktop")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	settings, path, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("load settings", "err", err)
	}
	logger.Info("starting", "config", path)

	game, err := desktop.New(desktop.Options{
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("create game", "err", err)
	}

	ebiten.SetWindowTitle("Pong")
	ebiten.SetWindowSize(int(settings.Field.Width), int(settings.Field.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
