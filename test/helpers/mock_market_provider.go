package helpers

import (
	"context"
	"sync"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
)

// MockMarketProvider is a test double for market.MarketDataProvider.
// Pages without an explicit response come back empty, which ends aggregation.
type MockMarketProvider struct {
	mu sync.Mutex

	pages      map[int][]*auction.Listing
	pageErrors map[int]error
	catalog    []catalog.Entry
	catalogErr error
	profit     []market.ProfitRecord
	profitErr  error
	supply     []market.SupplyRecord
	supplyErr  error

	// Delay blocks every call for the given duration (or until ctx is done)
	Delay time.Duration

	// OnFetch, if set, runs at the start of every call with the endpoint name
	OnFetch func(endpoint string)

	calls     map[string]int
	pageCalls []int
}

var _ market.MarketDataProvider = (*MockMarketProvider)(nil)

// NewMockMarketProvider creates an empty mock provider
func NewMockMarketProvider() *MockMarketProvider {
	return &MockMarketProvider{
		pages:      make(map[int][]*auction.Listing),
		pageErrors: make(map[int]error),
		calls:      make(map[string]int),
	}
}

// SetPage sets the listings returned for one auction page
func (m *MockMarketProvider) SetPage(page int, listings []*auction.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page] = listings
}

// SetPageError makes one auction page fail
func (m *MockMarketProvider) SetPageError(page int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageErrors[page] = err
}

// SetCatalog sets the item catalog response
func (m *MockMarketProvider) SetCatalog(entries []catalog.Entry, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog, m.catalogErr = entries, err
}

// SetProfitFeed sets the Kat profit feed response
func (m *MockMarketProvider) SetProfitFeed(records []market.ProfitRecord, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profit, m.profitErr = records, err
}

// SetSupplyFeed sets the low-supply feed response
func (m *MockMarketProvider) SetSupplyFeed(records []market.SupplyRecord, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.supply, m.supplyErr = records, err
}

// Calls returns how many times an endpoint was hit
func (m *MockMarketProvider) Calls(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[endpoint]
}

// PageCalls returns the requested page numbers in call order
func (m *MockMarketProvider) PageCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.pageCalls...)
}

func (m *MockMarketProvider) FetchAuctionsPage(ctx context.Context, page int) ([]*auction.Listing, error) {
	if err := m.enter(ctx, market.EndpointAuctions); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCalls = append(m.pageCalls, page)
	if err, ok := m.pageErrors[page]; ok {
		return nil, err
	}
	return append([]*auction.Listing{}, m.pages[page]...), nil
}

func (m *MockMarketProvider) FetchItemCatalog(ctx context.Context) ([]catalog.Entry, error) {
	if err := m.enter(ctx, market.EndpointItems); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return append([]catalog.Entry{}, m.catalog...), nil
}

func (m *MockMarketProvider) FetchProfitFeed(ctx context.Context) ([]market.ProfitRecord, error) {
	if err := m.enter(ctx, market.EndpointKatProfit); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profitErr != nil {
		return nil, m.profitErr
	}
	return append([]market.ProfitRecord{}, m.profit...), nil
}

func (m *MockMarketProvider) FetchSupplyFeed(ctx context.Context) ([]market.SupplyRecord, error) {
	if err := m.enter(ctx, market.EndpointLowSupply); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.supplyErr != nil {
		return nil, m.supplyErr
	}
	return append([]market.SupplyRecord{}, m.supply...), nil
}

// enter counts the call, runs the hook and applies the configured delay
func (m *MockMarketProvider) enter(ctx context.Context, endpoint string) error {
	m.mu.Lock()
	m.calls[endpoint]++
	hook := m.OnFetch
	delay := m.Delay
	m.mu.Unlock()

	if hook != nil {
		hook(endpoint)
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ctx.Err()
}
