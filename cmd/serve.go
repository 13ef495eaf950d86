package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"table-reconcile/core/config"
	"table-reconcile/core/loader"
	"table-reconcile/core/logger"
	"table-reconcile/core/middleware/auth"
	"table-reconcile/core/middleware/rayid"
	"table-reconcile/feature/reconciliation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "table-reconcile/docs/swagger"
)

// @title Table Reconcile API
// @version 1.0
// @description API for reconciling delimited tabular files.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reconciliation HTTP server",
		Long:  `Starts the HTTP server exposing POST /reconcile and the Swagger documentation.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(".")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logg, err := logger.New(&cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logg.Sync()
			zap.ReplaceGlobals(logg)

			if cfg.Server.ApiKey == "" {
				logg.Warn("SERVER_API_KEY is empty, the API is unauthenticated")
			}
			logg.Info("Serving jobs from data directory", zap.String("data_dir", cfg.Server.DataDir))

			app, err := newApp(cfg, logg, reconciliation.NewService(cfg, logg, nil, nil))
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
				errCh <- app.Listen(cfg.Server.Address())
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case <-quit:
			}

			logg.Info("Shutting down server...")
			return app.Shutdown()
		},
	}
}

// newApp builds the fiber application with middleware and features registered.
func newApp(cfg *config.Config, logg *zap.Logger, svc *reconciliation.Service) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit(),
	})

	// RayID first so every log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	mgr := loader.NewManager(logg)
	mgr.Register(reconciliation.NewFeature(svc))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}
