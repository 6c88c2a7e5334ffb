package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/internal/server"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/pdf"
	_ "github.com/teamops/dashboard/pdf/templates"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the PDF generation server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				return serve(ctx, e.cfg, addr)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, defaults to server.host:server.port")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, addr string) error {
	log := logger.StdLogger()

	srv, err := server.NewServer(cfg, log, pdf.Default())
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	srv.SetupRouter()

	config.Watch(func(c *config.Config) {
		log.Info(context.Background(), "Config changed, restart to apply server settings", "run_mode", c.RunMode)
	})

	if addr == "" {
		addr = cfg.Addr()
	}
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "Starting server", "addr", addr, "templates", pdf.Default().Names())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
	case <-ctx.Done():
	case serveErr = <-errCh:
		log.Error(ctx, "Server failed", "error", serveErr)
	}

	log.Info(context.Background(), "Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(context.Background(), "Server forced to shutdown", "error", err)
	}
	srv.Cleanup(shutdownCtx)

	log.Info(context.Background(), "Server exited")
	return serveErr
}
