package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"investrack/internal/config"
	"investrack/internal/dashboard"
	"investrack/internal/logger"
	"investrack/internal/models"
	"investrack/internal/performance"
	"investrack/internal/prices"
	"investrack/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "investrack",
		Usage: "crypto portfolio dashboard valued in GHS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   ".",
				Usage:   "directory holding config.yml",
				EnvVars: []string{"INVESTRACK_CONFIG_DIR"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the dashboard over HTTP",
				Action: serve,
			},
			{
				Name:  "report",
				Usage: "run once and print the dashboard to the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "style", Value: "auto", Usage: "glamour style (auto, dark, light, notty)"},
					&cli.IntFlag{Name: "width", Value: 100, Usage: "word wrap width"},
				},
				Action: report,
			},
			{
				Name:  "export",
				Usage: "run once and write the breakdown and history to an xlsx workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "investrack.xlsx", Usage: "output file"},
				},
				Action: export,
			},
		},
	}
}

// app is the wired dashboard shared by every command.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	store storage.Store
	svc   *dashboard.Service
}

func bootstrap(c *cli.Context) (*app, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}
	log.Info("Configuration loaded")

	mode, err := performance.ParseMode(cfg.Performance.Mode)
	if err != nil {
		return nil, err
	}

	defaults := models.DefaultSettings()
	defaults.FXRate = cfg.Defaults.FXRate
	defaults = defaults.Normalize()

	store, err := storage.New(cfg.Storage, defaults, log)
	if err != nil {
		return nil, fmt.Errorf("could not open storage: %w", err)
	}

	source, err := prices.NewSource(cfg.Prices, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info("Price source ready", zap.String("source", source.Name()))

	svc := dashboard.NewService(store, prices.NewService(source, log), dashboard.Options{
		Mode:          mode,
		RecordHistory: cfg.History.Enabled,
	}, log)

	return &app{cfg: cfg, log: log, store: store, svc: svc}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("Failed to close storage", zap.Error(err))
	}
	_ = a.log.Sync()
}

func serve(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	srv := dashboard.NewServer(a.cfg.Server.Port, a.svc, a.log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-c.Context.Done():
		a.log.Info("Shutdown signal received, gracefully shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("dashboard server shutdown: %w", err)
	}
	a.log.Info("Dashboard has been shut down.")
	return nil
}

func report(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	out, err := dashboard.RenderTerminal(a.svc.Run(c.Context), c.String("style"), c.Int("width"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.App.Writer, out)
	return err
}

func export(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	path := c.String("out")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := dashboard.WriteWorkbook(f, a.svc.Run(c.Context)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	a.log.Info("Workbook written", zap.String("path", path))
	return nil
}
