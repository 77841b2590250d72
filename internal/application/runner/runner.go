package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/metrics"
	auctionQueries "github.com/Zackmartin238/HyFlipper/internal/application/auction/queries"
	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	tradingQueries "github.com/Zackmartin238/HyFlipper/internal/application/trading/queries"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
	"github.com/Zackmartin238/HyFlipper/pkg/utils"
)

const (
	ReasonSuperseded = "Superseded by a newer query."
	ReasonCancelled  = "Query cancelled."
	ReasonTimedOut   = "Query timed out."
)

// Options configures a Runner
type Options struct {
	// CancelSuperseded cancels the previous run when a new one is submitted
	CancelSuperseded bool

	// LoggerFactory builds the logger for one run; nil uses the logger in the submit context
	LoggerFactory func(runID string) logging.ContainerLogger

	// OnOutcome is invoked from the worker goroutine with every terminal outcome
	OnOutcome func(*Outcome)

	Clock shared.Clock
}

// run tracks one in-flight worker
type run struct {
	id         string
	cancel     context.CancelFunc
	superseded bool
}

// Runner executes each query on its own goroutine so the caller stays responsive.
//
// Every submission gets a fresh state machine and delivers exactly one terminal
// Outcome on its channel, which is then closed. Latest() reflects whichever run
// finished last, not whichever was submitted last.
type Runner struct {
	mediator mediator.Mediator
	opts     Options
	clock    shared.Clock

	mu      sync.Mutex
	current *run
	latest  *Outcome
	wg      sync.WaitGroup
}

// NewRunner creates a runner dispatching through the given mediator
func NewRunner(m mediator.Mediator, opts Options) *Runner {
	clock := opts.Clock
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Runner{
		mediator: m,
		opts:     opts,
		clock:    clock,
	}
}

// Submit validates cfg and starts a worker for it.
// Invalid configurations are rejected synchronously and start nothing.
func (r *Runner) Submit(ctx context.Context, cfg query.Config) (string, <-chan *Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}

	request, err := requestFor(cfg)
	if err != nil {
		return "", nil, err
	}

	runID := utils.GenerateRunID(string(cfg.Mode))

	logger := logging.LoggerFromContext(ctx)
	if r.opts.LoggerFactory != nil {
		logger = r.opts.LoggerFactory(runID)
	}

	runCtx, cancel := context.WithCancel(logging.WithLogger(ctx, logger))
	current := &run{id: runID, cancel: cancel}

	r.mu.Lock()
	previous := r.current
	r.current = current
	if r.opts.CancelSuperseded && previous != nil {
		previous.superseded = true
		previous.cancel()
	}
	r.mu.Unlock()

	outcomes := make(chan *Outcome, 1)

	r.wg.Add(1)
	go r.execute(runCtx, current, cfg, request, outcomes)

	return runID, outcomes, nil
}

// Latest returns the most recently finished outcome, or nil before any run finished
func (r *Runner) Latest() *Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Wait blocks until every submitted run has delivered its outcome
func (r *Runner) Wait() {
	r.wg.Wait()
}

// execute runs one query to a terminal state
func (r *Runner) execute(ctx context.Context, current *run, cfg query.Config, request mediator.Request, outcomes chan<- *Outcome) {
	defer r.wg.Done()
	defer close(outcomes)
	defer current.cancel()

	logger := logging.LoggerFromContext(ctx)
	sm := shared.NewQueryStateMachine(r.clock)

	outcome := &Outcome{
		RunID:     current.id,
		Mode:      cfg.Mode,
		StartedAt: sm.CreatedAt(),
	}

	recordTransition(logger, "begin fetch", sm.BeginFetch())
	metrics.RecordQueryStarted(string(cfg.Mode))
	logger.Log(logging.LevelInfo, "Query started", map[string]interface{}{
		"mode":    string(cfg.Mode),
		"keyword": cfg.Keyword,
	})

	func() {
		defer func() {
			if p := recover(); p != nil {
				recordTransition(logger, "mark unavailable", sm.MarkUnavailable(fmt.Sprintf("An error occurred: %v", p)))
				logger.Log(logging.LevelError, "Query worker panicked", map[string]interface{}{
					"panic": fmt.Sprintf("%v", p),
				})
			}
		}()

		response, err := r.mediator.Send(ctx, request)
		if err != nil {
			recordTransition(logger, "mark unavailable", sm.MarkUnavailable(r.reasonFor(ctx, current, err)))
			return
		}

		if err := attach(outcome, response); err != nil {
			recordTransition(logger, "mark unavailable", sm.MarkUnavailable(fmt.Sprintf("An error occurred: %v", err)))
			return
		}

		recordTransition(logger, "mark ready", sm.MarkReady())
	}()

	outcome.State = sm.State()
	outcome.Reason = sm.Reason()
	if finished := sm.FinishedAt(); finished != nil {
		outcome.FinishedAt = *finished
	} else {
		outcome.FinishedAt = r.clock.Now()
	}
	if !outcome.IsReady() {
		outcome.Auctions, outcome.Profits, outcome.Margins = nil, nil, nil
	}

	metrics.RecordQueryFinished(string(cfg.Mode), string(outcome.State), outcome.Duration().Seconds(), outcome.ResultCount())
	logger.Log(logging.LevelInfo, "Query finished", map[string]interface{}{
		"state":   string(outcome.State),
		"reason":  outcome.Reason,
		"results": outcome.ResultCount(),
	})

	r.mu.Lock()
	r.latest = outcome
	if r.current == current {
		r.current = nil
	}
	r.mu.Unlock()

	outcomes <- outcome

	if r.opts.OnOutcome != nil {
		r.opts.OnOutcome(outcome)
	}
}

// reasonFor turns a handler error into the short user-facing reason
func (r *Runner) reasonFor(ctx context.Context, current *run, err error) string {
	// Cancellation and timeouts take precedence over provider errors
	if ctxErr := ctx.Err(); ctxErr != nil {
		r.mu.Lock()
		superseded := current.superseded
		r.mu.Unlock()

		switch {
		case superseded:
			return ReasonSuperseded
		case errors.Is(ctxErr, context.DeadlineExceeded):
			return ReasonTimedOut
		default:
			return ReasonCancelled
		}
	}

	var unavailable *market.UnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.Reason
	}

	return fmt.Sprintf("An error occurred: %v", err)
}

// requestFor maps a query configuration to the mediator request for its mode
func requestFor(cfg query.Config) (mediator.Request, error) {
	switch cfg.Mode {
	case query.ModeAuctionSearch:
		return &auctionQueries.SearchAuctionsQuery{
			Keyword:    cfg.Keyword,
			BuyNowOnly: cfg.BuyNowOnly,
			SortMode:   cfg.SortMode,
			Limit:      cfg.Limit,
		}, nil
	case query.ModeProfitRanking:
		return &tradingQueries.RankProfitOpportunitiesQuery{
			Limit:          cfg.Limit,
			ProfitableOnly: cfg.ProfitableOnly,
		}, nil
	case query.ModeSupplyRanking:
		return &tradingQueries.RankSupplyMarginsQuery{
			Limit:         cfg.Limit,
			MinRealMargin: cfg.MinRealMargin,
		}, nil
	default:
		return nil, shared.NewValidationError("mode", fmt.Sprintf("unsupported mode %q", cfg.Mode))
	}
}

// attach stores a handler response on the outcome
func attach(outcome *Outcome, response mediator.Response) error {
	switch resp := response.(type) {
	case *auctionQueries.SearchAuctionsResponse:
		outcome.Auctions = resp
	case *tradingQueries.RankProfitOpportunitiesResponse:
		outcome.Profits = resp
	case *tradingQueries.RankSupplyMarginsResponse:
		outcome.Margins = resp
	default:
		return fmt.Errorf("unexpected response type %T", response)
	}
	return nil
}

// recordTransition logs a rejected state-machine transition
func recordTransition(logger logging.ContainerLogger, transition string, err error) {
	if err == nil {
		return
	}
	logger.Log(logging.LevelError, "Invalid query state transition", map[string]interface{}{
		"transition": transition,
		"error":      err.Error(),
	})
}
