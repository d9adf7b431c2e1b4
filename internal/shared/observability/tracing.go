// # internal/shared/observability/tracing.go
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer is the shared tracer for the analysis pipeline. It resolves
// through the global provider, so spans are no-ops until SetupTracing
// installs a real one.
var Tracer = otel.Tracer("docgen")

// SetupTracing installs an OTLP gRPC trace provider pointed at endpoint
// and returns a shutdown func that flushes pending spans. An empty
// endpoint leaves the no-op provider in place.
func SetupTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter for %q: %w", endpoint, err)
	}

	res := sdkresource.NewSchemaless(
		attribute.String("service.name", "docgen"),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("docgen")

	return provider.Shutdown, nil
}
