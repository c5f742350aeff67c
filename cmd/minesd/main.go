package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"minesweeper/config"
	"minesweeper/server"
)

type Server struct {
	GameServer *server.GameServer
	httpServer *http.Server
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalln(err)
	}

	session, err := cfg.NewSession(logger)
	if err != nil {
		logger.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gs := server.NewGameServer(session, server.WithLogger(logger))
	s := Server{
		GameServer: gs,
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           gs.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
	go s.GameServer.Loop(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
	}()

	logger.WithField("addr", cfg.HTTPAddr).Info("minesd listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalln(err)
	}
	logger.Info("minesd stopped")
}
