// Package main wires the HTTP server for the activity signup service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"activity-signup/config"
	"activity-signup/internal/repository"
	"activity-signup/internal/transport/http/server"
	"activity-signup/internal/usecase"
	"activity-signup/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err, "backend", cfg.Storage.Backend)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	uc := usecase.New(log, repo, cfg.HTTP.RequestTimeout)
	serv := server.New(cfg, log, uc)

	go func() {
		log.Infow("listening", "addr", cfg.ServerAddr(), "backend", cfg.Storage.Backend)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	if err := serv.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Warnw("server shutdown", "error", err, "timeout", cfg.Server.ShutdownTimeout)
	}
}
