package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mortality/internal/config"
	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/mcp"
	"github.com/rpggio/mortality/internal/report"
	"github.com/rpggio/mortality/internal/sqlite"
	"github.com/rpggio/mortality/internal/transport"
)

const version = "0.1.0"

func main() {
	os.Exit(execute())
}

// execute returns the process exit code so deferred cleanup runs before exit.
func execute() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	// Logs never go to stdout: the report and the stdio transport own it.
	logWriter := io.Writer(os.Stderr)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("analysis failed", "error", err)
		return 1
	}
	return 0
}

func run(cfg config.Config, logger *slog.Logger, out io.Writer) error {
	rows, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", "path", cfg.Data.Path, "rows", len(rows))

	var repo comparison.Repository
	if cfg.DB.Path != "" {
		if err := ensureDBDir(cfg.DB.Path); err != nil {
			return fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.RunMigrations(); err != nil {
			return err
		}
		repo = sqlite.NewComparisonRepository(db)
	}

	svc := comparison.NewService(repo, logger,
		comparison.WithAlpha(cfg.Analysis.Alpha),
		comparison.WithSource(filepath.Base(cfg.Data.Path)),
	)
	reportOpts := report.Options{State: cfg.Analysis.State, TopN: cfg.Report.TopN}

	switch cfg.Mode {
	case config.ModeStdio, config.ModeHTTP:
		server := mcp.NewServer(mcp.Config{
			Comparisons:   svc,
			Rows:          rows,
			ReportOptions: reportOpts,
			Version:       version,
			Logger:        logger,
		})
		if cfg.Mode == config.ModeStdio {
			return runStdioMode(logger, server)
		}
		return runHTTPMode(logger, server, cfg.Server.Host, cfg.Server.Port)
	default:
		return runReport(cfg, logger, svc, rows, reportOpts, out)
	}
}

func runReport(cfg config.Config, logger *slog.Logger, svc *comparison.Service, rows []dataset.Row, opts report.Options, out io.Writer) error {
	results, err := svc.RunAll(context.Background(), rows, cfg.Definitions())
	if err != nil {
		// Individual failures were already logged; the report covers the rest.
		logger.Warn("some comparisons failed", "failed", len(cfg.Definitions())-len(results))
	}

	rep := report.Build(rows, results, opts)
	if cfg.Report.Format == config.FormatJSON {
		return report.WriteJSON(out, rep)
	}
	return report.WriteText(out, rep)
}

func runStdioMode(logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(logger *slog.Logger, server *sdkmcp.Server, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewHandler(server, transport.DefaultSessionTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
