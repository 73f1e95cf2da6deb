package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/julianstephens/petspa/internal/config"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown func must not be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Errorf("trace context propagator not installed: %v", fields)
	}
}

func TestSetupEnabled(t *testing.T) {
	// The gRPC exporter connects lazily, so no collector is needed.
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{
		Enabled:  true,
		Endpoint: "127.0.0.1:4317",
		Insecure: true,
	})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
