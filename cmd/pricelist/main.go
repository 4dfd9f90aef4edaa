// Command pricelist loads every price list in a directory, answers product
// queries from the console (or over HTTP when SERVER_ENABLED is set) and
// writes the full catalog to an HTML report on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Damilavkin/price-list/internal/config"
	"github.com/Damilavkin/price-list/internal/console"
	"github.com/Damilavkin/price-list/internal/core"
	"github.com/Damilavkin/price-list/internal/logging"
	"github.com/Damilavkin/price-list/internal/report"
	"github.com/Damilavkin/price-list/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	policy, err := core.ParseRowPolicy(cfg.Catalog.RowPolicy)
	if err != nil {
		return err
	}

	exporter := report.NewExporter(cfg.Report.Title)
	svc := core.NewService(core.Options{
		RowPolicy:   policy,
		MaxFileSize: cfg.Catalog.MaxFileSize,
	}, exporter)

	ctx := context.Background()
	term := console.New(os.Stdin, os.Stdout)
	dir, err := term.PromptDirectory(cfg.Catalog.Directory)
	if err != nil {
		return err
	}

	res, err := svc.Load(ctx, dir)
	if err != nil {
		return err
	}
	term.PrintLoad(res)

	if cfg.Server.Enabled {
		err = serve(ctx, svc, exporter, cfg.Server)
	} else {
		err = term.Run(ctx, svc)
	}
	if err != nil {
		return err
	}

	if err := svc.Export(ctx, cfg.Report.Path); err != nil {
		return err
	}
	fmt.Printf("Данные экспортированы в %s\n", cfg.Report.Path)
	return nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func serve(ctx context.Context, svc *core.Service, exporter *report.Exporter, cfg config.ServerConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(svc, exporter, cfg)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
