package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/fanren/config"
	"github.com/minaorangina/fanren/engine"
	"github.com/minaorangina/fanren/internal/logging"
	"github.com/minaorangina/fanren/journal"
	"github.com/minaorangina/fanren/server"
	"github.com/minaorangina/fanren/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer logger.Sync()

	var moves engine.Journal
	if cfg.Journaled() {
		j, err := journal.Open(cfg.JournalPath, logger)
		if err != nil {
			logger.Fatal("could not open journal", zap.Error(err))
		}
		defer j.Close()
		moves = j
	}

	games := store.NewInMemoryGameStore()
	defer games.Stop()

	s := server.NewServer(server.ServerOpts{
		Store:          games,
		Journal:        moves,
		CheckWait:      cfg.CheckWait,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})
	s.Addr = cfg.Addr()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(shutdown)
	}()

	logger.Info("listening", zap.String("addr", s.Addr))
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", zap.Error(err))
	}
}
