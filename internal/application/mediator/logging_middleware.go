package mediator

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
)

// LoggingMiddleware logs every dispatched request with its outcome and duration
// through the logger carried in the context
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := logging.LoggerFromContext(ctx)
		name := RequestName(request)
		start := time.Now()

		logger.Log(logging.LevelDebug, "Dispatching "+name, nil)

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(logging.LevelWarn, name+" failed", metadata)
		} else {
			logger.Log(logging.LevelDebug, name+" completed", metadata)
		}

		return response, err
	}
}

// RequestName extracts a clean type name from the request using reflection
// Examples:
//   - "*queries.SearchAuctionsQuery" → "SearchAuctionsQuery"
//   - "queries.RankProfitOpportunitiesQuery" → "RankProfitOpportunitiesQuery"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
