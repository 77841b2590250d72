package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/metrics"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
)

type okHandler struct{}

func (okHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "ok", nil
}

type failingQuery struct{}

type failHandler struct{}

func (failHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return nil, errors.New("unavailable")
}

type okQuery struct{}

func TestServer_ExposesRecordedMetrics(t *testing.T) {
	// Arrange
	handlerCollector, err := metrics.Setup()
	require.NoError(t, err)

	m := mediator.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(handlerCollector))
	require.NoError(t, mediator.RegisterHandler[*okQuery](m, okHandler{}))
	require.NoError(t, mediator.RegisterHandler[*failingQuery](m, failHandler{}))

	server, err := metrics.NewServer("127.0.0.1", 0, "/metrics")
	require.NoError(t, err)
	server.Start()
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	// Act
	metrics.RecordProviderRequest("items", 200, 0.12)
	metrics.RecordCacheHit("items")
	metrics.RecordCacheMiss("auctions")
	metrics.RecordQueryStarted("supply-ranking")
	metrics.RecordQueryFinished("supply-ranking", "READY", 0.4, 12)
	_, _ = m.Send(context.Background(), &okQuery{})
	_, _ = m.Send(context.Background(), &failingQuery{})

	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Assert
	text := string(body)
	assert.Contains(t, text, "hyflipper_pipeline_provider_requests_total")
	assert.Contains(t, text, "hyflipper_pipeline_cache_lookups_total")
	assert.Contains(t, text, "hyflipper_pipeline_queries_total")
	assert.Contains(t, text, `hyflipper_pipeline_handler_requests_total{request="okQuery",status="success"} 1`)
	assert.Contains(t, text, `hyflipper_pipeline_handler_requests_total{request="failingQuery",status="error"} 1`)
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	m := mediator.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(nil))
	require.NoError(t, mediator.RegisterHandler[*okQuery](m, okHandler{}))

	response, err := m.Send(context.Background(), &okQuery{})

	require.NoError(t, err)
	assert.Equal(t, "ok", response)
}
