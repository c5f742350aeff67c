package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"minesweeper/config"
	"minesweeper/tty"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalln(err)
	}
	// termbox owns the screen
	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
	}

	session, err := cfg.NewSession(logger)
	if err != nil {
		log.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tty.NewUI(session, logger).Run(ctx); err != nil {
		stop()
		log.Fatalln(err)
	}
}
