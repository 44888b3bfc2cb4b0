// @title			Task Manager API
// @version		1.0
// @description	Role-aware task tracking API for admins and developers.
// @BasePath		/api/v1

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

	"github.com/urfave/cli/v2"

	"github.com/boltayevjahongir/task-manager/internal/config"
	"github.com/boltayevjahongir/task-manager/internal/database"
	"github.com/boltayevjahongir/task-manager/internal/handler"
	"github.com/boltayevjahongir/task-manager/internal/logger"
	"github.com/boltayevjahongir/task-manager/internal/seed"
)

func main() {
	app := &cli.App{
		Name:  "taskmanager",
		Usage: "Task tracking backend for admins and developers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:     "jwt-secret",
						Usage:    "Secret key for signing access and refresh tokens",
						EnvVars:  []string{"JWT_SECRET"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "initial-admin-email",
						Usage:   "Email that signs up straight into an approved admin account",
						EnvVars: []string{"INITIAL_ADMIN_EMAIL"},
					},
					&cli.DurationFlag{
						Name:    "access-token-ttl",
						Value:   config.DefaultAccessTokenTTL,
						Usage:   "Access token lifetime",
						EnvVars: []string{"ACCESS_TOKEN_TTL"},
					},
					&cli.DurationFlag{
						Name:    "refresh-token-ttl",
						Value:   config.DefaultRefreshTokenTTL,
						Usage:   "Refresh token lifetime",
						EnvVars: []string{"REFRESH_TOKEN_TTL"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "Fill an empty database with demo accounts and tasks",
				Action: runSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	cfg := &config.Config{
		Port:              c.String("port"),
		DatabaseURL:       c.String("database-url"),
		JWTSecret:         c.String("jwt-secret"),
		AccessTokenTTL:    c.Duration("access-token-ttl"),
		RefreshTokenTTL:   c.Duration("refresh-token-ttl"),
		InitialAdminEmail: c.String("initial-admin-email"),
	}
	if cfg.Port == "" {
		cfg.Port = config.DefaultPort
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool(), cfg)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runSeed(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return seed.Run(ctx, db.Pool())
}
