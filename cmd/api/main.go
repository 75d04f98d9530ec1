package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bahjat/design-playbook/internal/analyzer"
	"github.com/Bahjat/design-playbook/internal/designinsight"
	"github.com/Bahjat/design-playbook/internal/platform/config"
	"github.com/Bahjat/design-playbook/internal/platform/logger"
	"github.com/Bahjat/design-playbook/internal/platform/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	fetcher := designinsight.NewHTTPClient(
		designinsight.WithTimeout(cfg.FetchTimeout),
		designinsight.WithPrivateNetworkGuard(cfg.BlockPrivateNetworks),
	)
	service := analyzer.NewService(designinsight.NewEngine(fetcher), log)
	transport := analyzer.NewTransport(service, log, cfg.AnalyzeTimeout)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.Logging(log)),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.AnalyzeTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("the tool started", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
