package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gonkalabs/noface/internal/anonymizer"
	"github.com/gonkalabs/noface/internal/config"
	"github.com/gonkalabs/noface/internal/view"
	"github.com/gonkalabs/noface/internal/web"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long: `Serve starts the NoFace web UI. Upload a .txt file in the browser to see
the original, anonymized and replaced text side by side.

Examples:
  noface serve
  noface serve --port 9000 --anonymizer-url http://anonymizer:3000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides PORT)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, closer, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("serve: listen: %w", err)
	}
	return runServer(ctx, cfg, ln)
}

// runServer serves the UI on ln until ctx is cancelled, then shuts down
// gracefully.
func runServer(ctx context.Context, cfg *config.Cfg, ln net.Listener) error {
	client := anonymizer.New(cfg.AnonymizerURL)
	sessions := view.NewSessions(cfg.SessionTTL)
	handler := web.New(client, sessions, cfg.MaxUploadBytes)

	srv := &http.Server{
		Handler:           web.NewRouter(handler, cfg.CORSAllowAll),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting noface server",
			"addr", ln.Addr().String(),
			"anonymizer", client.URL(),
			"maxUpload", cfg.MaxUploadBytes,
			"corsAllowAll", cfg.CORSAllowAll,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
