package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/strain/internal/config"
	"github.com/meltforce/strain/internal/ingest/alpha"
	"github.com/meltforce/strain/internal/mcp"
	"github.com/meltforce/strain/internal/metrics"
	"github.com/meltforce/strain/internal/server"
	"github.com/meltforce/strain/internal/storage"
	"github.com/meltforce/strain/internal/workout"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit (postgres only)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("Strain starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *migrateOnly {
		if cfg.Storage.Driver != config.DriverPostgres {
			log.Error("migrate-only requires the postgres driver", "driver", cfg.Storage.Driver)
			os.Exit(1)
		}
		if err := storage.RunMigrations(cfg.Database.DSN(), cfg.Storage.Migrations); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrate-only: exiting")
		return
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Open storage
	kv, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	m := metrics.New()
	store := m.Store(storage.NewStateStore(kv, cfg.Storage.Key, log))

	// Restore state and start the single writer
	engine := workout.New(store, log, workout.OnFinish(m.WorkoutFinished))
	if err := engine.Restore(ctx); err != nil {
		log.Warn("initial state save failed", "error", err)
	}
	loop := workout.NewLoop(engine)
	go loop.Run(ctx)

	// Create server
	alphaProvider := alpha.NewProvider(loop, log)
	srv := server.New(loop, alphaProvider, m, cfg.Auth.APIKey, log)
	srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcp.New(loop, Version, log)))

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	// In-flight operations have finished; stop the writer after the listener.
	stop()
	log.Info("server stopped")
}
