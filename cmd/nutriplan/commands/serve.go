package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nutriplan/internal/api"
	"nutriplan/internal/telegram"
)

// serve: run the HTTP API until interrupted.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the Telegram webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.NewServer(appCtx, log)
			mux := http.NewServeMux()
			server.Register(mux)

			if cfg.TelegramEnabled() {
				bot, err := telegram.NewBot(cfg, appCtx, log)
				if err != nil {
					return err
				}
				bot.RegisterHandlers(mux)
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           server.LogRequests(mux),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("server listening", zap.String("port", cfg.Port), zap.Bool("telegram", cfg.TelegramEnabled()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
