package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/pickup-notifier/internal/api/server"
	"github.com/aliskhannn/pickup-notifier/internal/config"
	orderhandler "github.com/aliskhannn/pickup-notifier/internal/rabbitmq/handlers/order"
	"github.com/aliskhannn/pickup-notifier/internal/worker"
)

func newServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the reminder dispatcher and the order event consumer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var events *worker.OrderEvents
			if cfg.RabbitMQ.Enabled {
				q, closeQueue, err := connectOrderQueue(cfg.RabbitMQ)
				if err != nil {
					return err
				}
				defer closeQueue()

				events = worker.NewOrderEvents(q, orderhandler.NewHandler(a.reminders))
			}

			return serve(ctx, cfg, a, events)
		},
	}
}

// serve runs every long-lived component until ctx ends or one of them fails.
func serve(ctx context.Context, cfg *config.Config, a *app, events *worker.OrderEvents) error {
	g, gctx := errgroup.WithContext(ctx)
	srv := server.New(cfg.Server.HTTPPort, a.routes())

	g.Go(func() error {
		zlog.Logger.Info().Str("addr", srv.Addr).Msg("http server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zlog.Logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
		}

		if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
			zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
		}

		return nil
	})

	a.dispatcher.Start(gctx)
	g.Go(func() error {
		<-gctx.Done()
		a.dispatcher.Stop()
		return nil
	})

	if events != nil {
		g.Go(func() error {
			events.Run(gctx, cfg.Retry, cfg.Workers.Count)
			return nil
		})
	}

	return g.Wait()
}
