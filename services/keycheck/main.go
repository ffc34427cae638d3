package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"llmkeys/pkg/config"
	"llmkeys/pkg/display"
	"llmkeys/pkg/keys"
	"llmkeys/pkg/logger"
	"llmkeys/pkg/manifest"
	"llmkeys/pkg/secrets"
	"llmkeys/pkg/telemetry"
)

const serviceName = "keycheck"

var ErrMissingKeys = errors.New("required keys missing")

// App holds dependencies for the keycheck command
type App struct {
	Out              io.Writer
	LogOut           io.Writer
	ConfigFn         func() *config.Config
	SecretProviderFn func(settings secrets.Settings) (secrets.SecretStore, error)
}

type options struct {
	manifestPath string
	baoPath      string
	plain        bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.manifestPath, "manifest", "", "YAML manifest listing required and optional services")
	fs.StringVar(&opts.baoPath, "bao-path", "", "OpenBao KV v2 path to read keys from before the environment")
	fs.BoolVar(&opts.plain, "plain", false, "print the report without terminal styling")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	app := &App{
		Out:      os.Stdout,
		LogOut:   os.Stderr,
		ConfigFn: config.FromEnvironment,
		SecretProviderFn: func(settings secrets.Settings) (secrets.SecretStore, error) {
			return secrets.NewBaoProvider(settings)
		},
	}

	if err := app.Run(context.Background(), opts); err != nil {
		logger.Error("key_check_failed", "error", err)
		os.Exit(1)
	}
}

func (a *App) Run(ctx context.Context, opts options) error {
	// 1. Configuration
	logger.Setup(a.LogOut, serviceName, logger.ParseLevel(os.Getenv("LOG_LEVEL")))
	cfg := a.ConfigFn()
	// LOG_LEVEL may come from .env.
	logger.Setup(a.LogOut, serviceName, logger.ParseLevel(cfg.Get("LOG_LEVEL")))

	// 2. Telemetry
	shutdownTracer, shutdownMeter, shutdownLogger, err := telemetry.Init(ctx, serviceName, cfg)
	if err != nil {
		logger.Warn("otel_init_failed, continuing without full observability", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownTracer != nil {
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Error("otel_shutdown_failed", "component", "tracer", "error", err)
			}
		}
		if shutdownMeter != nil {
			if err := shutdownMeter(shutdownCtx); err != nil {
				logger.Error("otel_shutdown_failed", "component", "meter", "error", err)
			}
		}
		if shutdownLogger != nil {
			if err := shutdownLogger(shutdownCtx); err != nil {
				logger.Error("otel_shutdown_failed", "component", "logger", "error", err)
			}
		}
	}()

	// 3. Key sources
	var src keys.Source = cfg
	if opts.baoPath != "" {
		store, err := a.SecretProviderFn(cfg)
		if err != nil {
			return fmt.Errorf("secret_provider_init_failed: %w", err)
		}
		defer store.Close()
		src = keys.Chain(secrets.StoreSource{Store: store, Path: opts.baoPath}, cfg)
	}

	// 4. Manifest
	m := manifest.Default()
	if opts.manifestPath != "" {
		m, err = manifest.Load(opts.manifestPath)
		if err != nil {
			return fmt.Errorf("manifest_load_failed: %w", err)
		}
	}

	// 5. Check and present
	report := a.Check(ctx, m, keys.New(src))

	style := display.AutoStyle
	if opts.plain {
		style = display.PlainStyle
	}
	if err := display.NewPresenter(a.Out, display.WithStyle(style)).Present(report.Markdown()); err != nil {
		return fmt.Errorf("present_failed: %w", err)
	}

	if missing := report.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingKeys, missing)
	}
	return nil
}

func (a *App) Check(ctx context.Context, m *manifest.Manifest, acc *keys.Accessor) manifest.Report {
	tracer := telemetry.GetTracer(serviceName)
	meter := telemetry.GetMeter(serviceName)

	checkedCounter, _ := telemetry.NewInt64Counter(meter, "keycheck.keys.checked", "Total service keys checked")
	missingCounter, _ := telemetry.NewInt64Counter(meter, "keycheck.keys.missing", "Total required keys found missing")
	durationHist, _ := telemetry.NewInt64Histogram(meter, "keycheck.duration.ms", "Key check duration in milliseconds", "ms")

	start := time.Now()
	ctx, span := tracer.Start(ctx, "job.key_check")
	defer span.End()

	report := m.Check(acc)

	missing := report.Missing()
	span.SetAttributes(
		attribute.Int("keys.checked", len(report.Entries)),
		attribute.Int("keys.missing", len(missing)),
	)
	if len(missing) > 0 {
		span.SetStatus(telemetry.CodeError, "required keys missing")
	} else {
		span.SetStatus(telemetry.CodeOk, "")
	}

	if checkedCounter != nil {
		telemetry.AddInt64Counter(ctx, checkedCounter, int64(len(report.Entries)))
	}
	if missingCounter != nil {
		telemetry.AddInt64Counter(ctx, missingCounter, int64(len(missing)))
	}
	if durationHist != nil {
		telemetry.RecordInt64Histogram(ctx, durationHist, time.Since(start).Milliseconds())
	}

	logger.Info("key_check_complete",
		"checked", len(report.Entries),
		"missing", len(missing),
		"duration", time.Since(start).String())

	return report
}
