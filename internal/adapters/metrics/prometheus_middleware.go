package metrics

import (
	"context"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records handler execution metrics
//
// Request names are extracted via reflection and simplified to remove package prefixes.
// For example: "*queries.RankSupplyMarginsQuery" becomes "RankSupplyMarginsQuery"
func PrometheusMiddleware(collector *HandlerMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		requestName := mediator.RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordRequestExecution(requestName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
