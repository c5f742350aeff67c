package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"minesweeper/config"
	"minesweeper/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}

	session, err := cfg.NewSession(logger)
	if err != nil {
		logger.Fatal(err)
	}

	gameConfig := game.DefaultConfig(cfg.Rows, cfg.Cols, cfg.CellSize)
	g, err := game.NewGame(gameConfig, session, logger)
	if err != nil {
		logger.Fatal(err)
	}

	ebiten.SetWindowSize(gameConfig.ScreenWidth(), gameConfig.ScreenHeight())
	ebiten.SetWindowTitle(gameConfig.Title)

	logger.WithFields(log.Fields{
		"rows": cfg.Rows, "cols": cfg.Cols, "mines": cfg.Mines,
	}).Info("starting minesweeper")
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal(err)
	}
}
