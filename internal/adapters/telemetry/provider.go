package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/libload/internal/core/ports"
)

// Setup installs a global TracerProvider. When logger is not nil, ended spans
// are forwarded to it through a Bridge. The returned function shuts the
// provider down.
func Setup(logger ports.Logger) func(context.Context) error {
	opts := []sdktrace.TracerProviderOption{}
	if logger != nil {
		opts = append(opts, sdktrace.WithSpanProcessor(NewBridge(logger)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown
}
