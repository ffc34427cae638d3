package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ScopeName is the instrumentation scope used when callers pass no name.
const ScopeName = "llmkeys"

const defaultServiceName = "unknown-service"

type Attribute = attribute.KeyValue

// Settings is a read-only key/value configuration.
type Settings interface {
	Lookup(key string) (string, bool)
}

func noopShutdown(context.Context) error { return nil }

// Init sets up OpenTelemetry traces, metrics and logs over one OTLP gRPC
// connection when OTEL_EXPORTER_OTLP_ENDPOINT is set in settings. Without an
// endpoint every shutdown is a no-op and the global providers stay no-op.
// The logger shutdown also closes the collector connection, so call it last.
func Init(ctx context.Context, serviceName string, settings Settings) (shutdownTracer, shutdownMeter, shutdownLogger func(context.Context) error, err error) {
	endpoint, _ := settings.Lookup("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		slog.Debug("otel_disabled", "reason", "OTEL_EXPORTER_OTLP_ENDPOINT not set")
		return noopShutdown, noopShutdown, noopShutdown, nil
	}

	if serviceName == "" {
		serviceName, _ = settings.Lookup("OTEL_SERVICE_NAME")
	}
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	shutdownTracer, err = initTraces(ctx, conn, res)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}

	shutdownMeter, err = initMetrics(ctx, conn, res)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}

	shutdownLogs, err := initLogs(ctx, conn, res, serviceName)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	shutdownLogger = func(ctx context.Context) error {
		return errors.Join(shutdownLogs(ctx), conn.Close())
	}

	slog.Info("otel_enabled", "endpoint", endpoint, "service", serviceName)

	return shutdownTracer, shutdownMeter, shutdownLogger, nil
}
