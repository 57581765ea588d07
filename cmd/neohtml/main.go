package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/InfiniteCoder01/neohtml/internal/config"
	"github.com/InfiniteCoder01/neohtml/internal/server"
	"github.com/InfiniteCoder01/neohtml/internal/site"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	dir := "."
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}

	switch os.Args[1] {
	case "build":
		builder := site.New(cfg, log)
		if err := builder.Build(context.Background(), dir); err != nil {
			log.Error("build failed", "error", err)
			os.Exit(1)
		}
	case "serve":
		serve(dir, cfg, log)
	default:
		usage()
		os.Exit(2)
	}
}

func serve(dir string, cfg config.Config, log *slog.Logger) {
	srv := server.New(dir, cfg, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("serving pages", "dir", dir, "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: neohtml <build|serve> [dir]")
}
