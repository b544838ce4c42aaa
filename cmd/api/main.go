package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesbackend/cmd/internal/config"
	"notesbackend/cmd/internal/domain/sqlite"
	"notesbackend/cmd/internal/domain/sqlite/repository"
	"notesbackend/cmd/internal/http/server"
	"notesbackend/cmd/internal/service"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only reach out to AWS when running in production
	var params config.ParameterStore
	if config.IsProduction() {
		store, err := config.NewParameterStore(ctx)
		if err != nil {
			log.Fatalf("unable to create parameter store client: %v", err)
		}
		params = store
	}

	cfg, err := config.Load(params)
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := sqlite.Open(sqlite.Options{
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		LogLevel:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("unable to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("failed to close database: %v", err)
		}
	}()

	noteStore := repository.NewNoteStore(db.DB)
	noteService := service.NewNoteService(noteStore)
	e := server.New(server.Options{BodyLimit: cfg.BodyLimit}, noteService)

	go func() {
		log.Infof("notes backend listening on %s (%s storage)", cfg.ServerAddr, db.Dialect)
		if err := e.Start(cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server stopped unexpectedly: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}
}
