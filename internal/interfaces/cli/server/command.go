// Package server implements the `issuedesk server` command.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"issuedesk/internal/infrastructure/config"
	"issuedesk/internal/infrastructure/database"
	"issuedesk/internal/infrastructure/migration"
	httpRouter "issuedesk/internal/interfaces/http"
	"issuedesk/internal/shared/biztime"
	"issuedesk/internal/shared/constants"
	"issuedesk/internal/shared/logger"
)

const shutdownGrace = 30 * time.Second

type options struct {
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP API",
		Long:  `Serve the staff and public issue APIs until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v := os.Getenv("ENV"); v != "" {
				opts.env = v
			}
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	f.StringVarP(&opts.configPath, "config", "c", "", "Config directory (default ./configs)")
	f.BoolVar(&opts.autoMigrate, "auto-migrate", false, "Apply pending migrations before serving")
	f.BoolVar(&opts.skipMigrationCheck, "skip-migration-check", false, "Do not read the schema version on startup")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.env, opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(opts.env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := checkMigrations(cfg, opts); err != nil {
		return err
	}

	router, err := httpRouter.NewRouter(database.Get(), cfg, logger.NewLogger())
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	defer router.Shutdown()
	router.SetupRoutes()

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           router.GetEngine(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			"address", srv.Addr,
			"environment", opts.env,
			"timezone", biztime.Location().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "grace", shutdownGrace)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// checkMigrations either applies pending migrations or only logs the current
// schema version. A failed version read is not fatal.
func checkMigrations(cfg *config.Config, opts *options) error {
	if opts.skipMigrationCheck {
		return nil
	}

	strategy := migration.NewGooseStrategy(database.Dialect(&cfg.Database), logger.NewLogger())

	if opts.autoMigrate {
		if opts.env == constants.EnvProduction {
			logger.Warn("auto-migrate enabled in production")
		}
		if err := strategy.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		logger.Warn("failed to read schema version", "error", err)
		return nil
	}
	logger.Info("schema version", "version", version)
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
