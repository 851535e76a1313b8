package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpx "github.com/leozex777/syncschwab/internal/http"
	"github.com/leozex777/syncschwab/internal/http/controllers"
	"github.com/leozex777/syncschwab/internal/http/router"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/power"
	"github.com/leozex777/syncschwab/internal/refresher"
)

func newServeCmd(cfgPath, envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP y el refresher de cache en background",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()
			return runServe(a)
		},
	}
}

func runServe(a *app) error {
	log := logger.Named("serve")

	// Arranque fresco: estampar el PID y forzar el worker a detenido.
	fresh, err := refresher.MarkProcessStart(a.cfg)
	if err != nil {
		log.Warn("could not mark process start", zap.Error(err))
	} else if fresh {
		log.Info("fresh process start detected")
	}

	// Prevención de suspensión mientras el servicio corre. En
	// plataformas sin soporte falla en silencio.
	ka := power.New()
	if ka.Acquire() {
		defer ka.Release()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ref *refresher.Refresher
	if a.cfg.Refresher.Enabled {
		ref = refresher.New(a.cfg, a.registry, a.agg, a.queue, a.settings)
	}

	deps := router.Deps{
		Clients:        controllers.NewClientsController(a.registry),
		MainAccount:    controllers.NewMainAccountController(a.registry, a.cfg),
		Status:         controllers.NewStatusController(a.registry, a.agg),
		Notifications:  controllers.NewNotificationsController(a.queue, ref),
		UIState:        controllers.NewUIStateController(a.uiState),
		Settings:       controllers.NewSettingsController(a.settings),
		Health:         controllers.NewHealthController(a.cfg, a.cache),
		MetricsHandler: httpx.RegisterMetrics(prometheus.DefaultRegisterer),
	}

	srv := httpx.NewServer(a.cfg.Server.Addr, router.New(deps))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Run(egCtx) })
	if ref != nil {
		eg.Go(func() error { return ref.Run(egCtx) })
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
