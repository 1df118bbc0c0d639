package cli

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	httpDelivery "github.com/smartkart/kiosk/internal/delivery/http"
	"github.com/smartkart/kiosk/internal/infrastructure/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the kiosk API for a display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context(), o.app)
		},
	}
}

// Serve runs the kiosk API and the catalog refresher until ctx is done
func Serve(ctx context.Context, app *App) error {
	cfg := app.Config

	if err := app.Session.Start(ctx); err != nil {
		zap.L().Warn("initial load incomplete", zap.Error(err))
	}

	if spec := cfg.Catalog.RefreshSchedule; spec != "" {
		refresher, err := scheduler.NewCatalogRefresher(spec, app.Session, cfg.Backend.Timeout)
		if err != nil {
			return err
		}
		refresher.Start()
		defer func() { <-refresher.Stop().Done() }()
		zap.L().Info("catalog refresh scheduled", zap.String("schedule", spec))
	}

	router := httpDelivery.SetupRouter(cfg, httpDelivery.NewHandler(app.Session))
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var serveErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		zap.L().Info("kiosk API listening",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
			cancel()
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("kiosk API shutdown error", zap.Error(err))
	}

	wg.Wait()
	return serveErr
}
