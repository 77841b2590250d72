package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/api"
	"github.com/Zackmartin238/HyFlipper/internal/adapters/cache"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	"github.com/Zackmartin238/HyFlipper/internal/application/runner"
	"github.com/Zackmartin238/HyFlipper/internal/application/setup"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
)

// farFutureEnd keeps every fake auction active (2100-01-01, epoch millis)
const farFutureEnd int64 = 4102444800000

// marketWorld holds the fake providers and the query stack of one scenario
type marketWorld struct {
	mu sync.Mutex

	pages           map[int][]map[string]interface{}
	catalog         []map[string]interface{}
	supply          []map[string]interface{}
	profit          []map[string]interface{}
	auctionsDown    bool
	catalogDown     bool
	profitFeedDown  bool
	auctionRequests int

	server *httptest.Server
	runner *runner.Runner

	outcome   *runner.Outcome
	submitErr error
}

func (w *marketWorld) reset() {
	if w.server != nil {
		w.server.Close()
	}
	w.pages = make(map[int][]map[string]interface{})
	w.catalog, w.supply, w.profit = nil, nil, nil
	w.auctionsDown, w.catalogDown, w.profitFeedDown = false, false, false
	w.auctionRequests = 0
	w.server, w.runner = nil, nil
	w.outcome, w.submitErr = nil, nil
}

// serve answers the four feed endpoints from the scenario's fixtures
func (w *marketWorld) serve(rw http.ResponseWriter, r *http.Request) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var payload interface{}
	switch r.URL.Path {
	case "/auctions":
		w.auctionRequests++
		if w.auctionsDown {
			rw.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		listings, ok := w.pages[page]
		if !ok {
			http.NotFound(rw, r)
			return
		}
		payload = map[string]interface{}{"success": true, "page": page, "auctions": listings}
	case "/items":
		if w.catalogDown {
			rw.WriteHeader(http.StatusBadGateway)
			return
		}
		payload = nonNil(w.catalog)
	case "/kat":
		if w.profitFeedDown {
			rw.WriteHeader(http.StatusBadGateway)
			return
		}
		payload = nonNil(w.profit)
	case "/supply":
		payload = nonNil(w.supply)
	default:
		http.NotFound(rw, r)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(payload)
}

func nonNil(rows []map[string]interface{}) []map[string]interface{} {
	if rows == nil {
		return []map[string]interface{}{}
	}
	return rows
}

// stack lazily starts the fake server and wires client → cache → mediator → runner
func (w *marketWorld) stack() (*runner.Runner, error) {
	if w.runner != nil {
		return w.runner, nil
	}

	w.server = httptest.NewServer(http.HandlerFunc(w.serve))

	client := api.NewProviderClientWithConfig(api.Endpoints{
		Auctions:  w.server.URL + "/auctions",
		Items:     w.server.URL + "/items",
		KatProfit: w.server.URL + "/kat",
		LowSupply: w.server.URL + "/supply",
	}, api.ClientOptions{
		Timeout:   5 * time.Second,
		RateLimit: 1000,
		Burst:     100,
	})

	cached, err := cache.NewCachedProvider(client, 0, 0, nil)
	if err != nil {
		return nil, err
	}

	m, err := setup.NewHandlerRegistry(cached, nil, 0).CreateConfiguredMediator(mediator.LoggingMiddleware())
	if err != nil {
		return nil, err
	}

	w.runner = runner.NewRunner(m, runner.Options{})
	return w.runner, nil
}

// submit runs one query to completion and records its outcome or rejection
func (w *marketWorld) submit(cfg query.Config) error {
	r, err := w.stack()
	if err != nil {
		return err
	}

	w.outcome, w.submitErr = nil, nil
	_, outcomes, err := r.Submit(context.Background(), cfg)
	if err != nil {
		w.submitErr = err
		return nil
	}

	select {
	case w.outcome = <-outcomes:
	case <-time.After(10 * time.Second):
		return fmt.Errorf("query did not finish")
	}
	if w.outcome == nil {
		return fmt.Errorf("query worker closed without an outcome")
	}
	return nil
}

// Shared assertion steps

func (w *marketWorld) theQueryShouldBeReady() error {
	if w.submitErr != nil {
		return fmt.Errorf("query was rejected: %v", w.submitErr)
	}
	if w.outcome == nil || !w.outcome.IsReady() {
		return fmt.Errorf("expected READY outcome, got %+v", w.outcome)
	}
	return nil
}

func (w *marketWorld) theQueryShouldBeUnavailableWithReason(reason string) error {
	if w.outcome == nil {
		return fmt.Errorf("no outcome recorded (submit error: %v)", w.submitErr)
	}
	if w.outcome.IsReady() {
		return fmt.Errorf("expected UNAVAILABLE, query was ready")
	}
	if w.outcome.Reason != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, w.outcome.Reason)
	}
	if w.outcome.ResultCount() != 0 {
		return fmt.Errorf("unavailable outcome carries %d results", w.outcome.ResultCount())
	}
	return nil
}

func (w *marketWorld) theQueryShouldBeRejected() error {
	if w.submitErr == nil {
		return fmt.Errorf("expected the query to be rejected")
	}
	return nil
}

// tableRows converts a data table with a header row into maps keyed by header
func tableRows(table *godog.Table) []map[string]string {
	if table == nil || len(table.Rows) < 2 {
		return nil
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

// InitializeMarketScenario registers every auction search and ranking step
func InitializeMarketScenario(ctx *godog.ScenarioContext) {
	w := &marketWorld{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		w.reset()
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if w.runner != nil {
			w.runner.Wait()
		}
		if w.server != nil {
			w.server.Close()
			w.server = nil
		}
		return c, nil
	})

	registerAuctionSearchSteps(ctx, w)
	registerRankingSteps(ctx, w)

	ctx.Step(`^the query should be ready$`, w.theQueryShouldBeReady)
	ctx.Step(`^the query should be unavailable with reason "([^"]*)"$`, w.theQueryShouldBeUnavailableWithReason)
	ctx.Step(`^the query should be rejected$`, w.theQueryShouldBeRejected)
}
