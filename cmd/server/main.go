package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/shuzaifak/Property-Sync-Owner/backend"
	"github.com/shuzaifak/Property-Sync-Owner/internal/config"
	"github.com/shuzaifak/Property-Sync-Owner/internal/logger"
	"github.com/shuzaifak/Property-Sync-Owner/server"
	"github.com/shuzaifak/Property-Sync-Owner/server/workflows"
	"github.com/shuzaifak/Property-Sync-Owner/sessions"
)

// sweepInterval is how often idle drafts are evicted
const sweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := config.New(ctx)
	if err != nil {
		return err
	}
	logger.Init(logger.Options{Level: c.GetLogLevel(), Pretty: c.IsDev()})
	displayAppname(c.GetAppName())

	repo, err := sessions.NewRepo(ctx, c)
	if err != nil {
		return fmt.Errorf("session storage: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Err(err).Msg("Failed to close session storage")
		}
	}()

	client := backend.New(c)
	api := func(ts oauth2.TokenSource) server.API { return client.WithTokenSource(ts) }

	flows := workflows.New(c.GetDraftTTL())
	go flows.Run(ctx, sweepInterval)

	handler, err := server.New(c, repo, api, flows)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
