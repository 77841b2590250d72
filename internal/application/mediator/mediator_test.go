package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	"github.com/Zackmartin238/HyFlipper/test/helpers"
)

type pingQuery struct{ Value string }

type pongResponse struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q := request.(*pingQuery)
	return &pongResponse{Value: "pong:" + q.Value}, nil
}

func TestMediator_DispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	// Act
	response, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:a", response.(*pongResponse).Value)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	_, err := m.Send(context.Background(), &pongResponse{})
	assert.Error(t, err)

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			response, err := next(ctx, request)
			order = append(order, name+":after")
			return response, err
		}
	}
	m := mediator.NewMediator()
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	// Act
	_, err := m.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestLoggingMiddleware_LogsThroughContextLogger(t *testing.T) {
	logger := helpers.NewCapturingLogger()
	m := mediator.NewMediator()
	m.RegisterMiddleware(mediator.LoggingMiddleware())
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	_, err := m.Send(logging.WithLogger(context.Background(), logger), &pingQuery{})

	require.NoError(t, err)
	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Dispatching pingQuery", entries[0].Message)
	assert.Equal(t, "pingQuery completed", entries[1].Message)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingQuery", mediator.RequestName(&pingQuery{}))
	assert.Equal(t, "pingQuery", mediator.RequestName(pingQuery{}))
	assert.Equal(t, "UnknownRequest", mediator.RequestName(nil))
}
