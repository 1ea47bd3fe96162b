package observability

import (
	"context"
	"testing"

	"github.com/annel0/tile-adventure/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTelemetry_InstallsProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := InitTelemetry(context.Background(), config.TelemetryConfig{
		Enabled:  true,
		Service:  "tile-adventure-test",
		Endpoint: "127.0.0.1:4318",
		Insecure: true,
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	// Спанов нет: экспортеру нечего отправлять
	require.NoError(t, shutdown(context.Background()))
}

func TestEndpointOrDefault(t *testing.T) {
	assert.Equal(t, "localhost:4318", endpointOrDefault(""))
	assert.Equal(t, "collector:4318", endpointOrDefault("collector:4318"))
}
