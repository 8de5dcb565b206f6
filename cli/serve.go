package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"adrija-tours/app"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.Initialize(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cfg.IsProduction() {
				log.Printf("Brochure render endpoint: %s/brochure/render", cfg.Server.BaseURL)
			}
			return serve(ctx, cfg.Addr(), a)
		},
	}
}

// serve runs the HTTP server and the catalog watcher until ctx is cancelled
// or one of them fails, then shuts the server down gracefully.
func serve(ctx context.Context, addr string, a *app.App) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", addr)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Printf("🛑 Shutting down server")
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if a.Watcher != nil {
		g.Go(func() error {
			return a.Watcher.Run(gctx)
		})
	}

	return g.Wait()
}
