package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/metrics"
	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

const (
	DefaultAuctionsURL  = "https://api.hypixel.net/skyblock/auctions"
	DefaultItemsURL     = "https://sky.coflnet.com/api/items"
	DefaultKatProfitURL = "https://sky.coflnet.com/api/kat/profit"
	DefaultLowSupplyURL = "https://sky.coflnet.com/api/auctions/supply/low"

	defaultTimeout          = 30 * time.Second
	defaultRateLimit        = 2.0
	defaultBurst            = 2
	defaultBreakerFailures  = 5
	defaultBreakerCooldown  = 30 * time.Second
	maxErrorBodySnippetSize = 256

	// NotAvailable is shown for text fields the profit feed left out
	NotAvailable = "N/A"
)

// Endpoints holds the base URL of each remote feed
type Endpoints struct {
	Auctions  string
	Items     string
	KatProfit string
	LowSupply string
}

// DefaultEndpoints returns the public Hypixel and Coflnet URLs
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Auctions:  DefaultAuctionsURL,
		Items:     DefaultItemsURL,
		KatProfit: DefaultKatProfitURL,
		LowSupply: DefaultLowSupplyURL,
	}
}

// ClientOptions tunes the transport behaviour of the provider client.
// Zero values fall back to the defaults.
type ClientOptions struct {
	Timeout         time.Duration
	RateLimit       float64 // requests per second
	Burst           int
	BreakerFailures int
	BreakerCooldown time.Duration
	UserAgent       string
	Clock           shared.Clock
	HTTPClient      *http.Client
}

// ProviderClient implements market.MarketDataProvider over HTTP
type ProviderClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	endpoints   Endpoints
	userAgent   string
	clock       shared.Clock
}

var _ market.MarketDataProvider = (*ProviderClient)(nil)

// NewProviderClient creates a provider client with default settings
// Rate limit: 2 requests per second with burst of 2
// Circuit breaker: opens after 5 consecutive failures for 30s
func NewProviderClient() *ProviderClient {
	return NewProviderClientWithConfig(DefaultEndpoints(), ClientOptions{})
}

// NewProviderClientWithConfig creates a provider client with custom endpoints and options
func NewProviderClientWithConfig(endpoints Endpoints, opts ClientOptions) *ProviderClient {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.BreakerFailures <= 0 {
		opts.BreakerFailures = defaultBreakerFailures
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = defaultBreakerCooldown
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "hyflipper"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &ProviderClient{
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		breaker:     NewCircuitBreaker(opts.BreakerFailures, opts.BreakerCooldown, opts.Clock),
		endpoints:   endpoints,
		userAgent:   opts.UserAgent,
		clock:       opts.Clock,
	}
}

// Breaker exposes the circuit breaker (used by the CLI to report state)
func (c *ProviderClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// FetchAuctionsPage retrieves one page of active auctions. The page number is
// sent as given. A 404 past the first page is how Hypixel reports running off
// the end, so it is translated to an empty page.
func (c *ProviderClient) FetchAuctionsPage(ctx context.Context, page int) ([]*auction.Listing, error) {
	if page < 1 {
		return nil, market.NewTransportError(market.EndpointAuctions, 0, fmt.Errorf("invalid page %d", page))
	}

	target, err := withQuery(c.endpoints.Auctions, "page", strconv.Itoa(page))
	if err != nil {
		return nil, market.NewTransportError(market.EndpointAuctions, 0, err)
	}

	var response struct {
		Success    bool   `json:"success"`
		Cause      string `json:"cause"`
		Page       int    `json:"page"`
		TotalPages int    `json:"totalPages"`
		Auctions   []struct {
			UUID             string `json:"uuid"`
			Auctioneer       string `json:"auctioneer"`
			ItemName         string `json:"item_name"`
			ItemLore         string `json:"item_lore"`
			StartingBid      int64  `json:"starting_bid"`
			HighestBidAmount int64  `json:"highest_bid_amount"`
			End              int64  `json:"end"`
			Bin              bool   `json:"bin"`
		} `json:"auctions"`
	}

	status, err := c.get(ctx, market.EndpointAuctions, target, &response)
	if err != nil {
		if status == http.StatusNotFound && page > 1 {
			return []*auction.Listing{}, nil
		}
		return nil, err
	}

	if !response.Success {
		return nil, market.NewTransportError(market.EndpointAuctions, status, fmt.Errorf("provider reported failure: %s", response.Cause))
	}

	logger := logging.LoggerFromContext(ctx)
	listings := make([]*auction.Listing, 0, len(response.Auctions))
	for _, raw := range response.Auctions {
		var endTime time.Time
		if raw.End > 0 {
			endTime = time.UnixMilli(raw.End)
		}
		listing, err := auction.NewListing(
			raw.UUID,
			raw.ItemName,
			raw.ItemLore,
			raw.Auctioneer,
			raw.StartingBid,
			raw.HighestBidAmount,
			endTime,
			raw.Bin,
		)
		if err != nil {
			logger.Log(logging.LevelWarn, "Skipping malformed auction", map[string]interface{}{
				"uuid":  raw.UUID,
				"error": err.Error(),
			})
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// FetchItemCatalog retrieves the tag → display name catalog
func (c *ProviderClient) FetchItemCatalog(ctx context.Context) ([]catalog.Entry, error) {
	var response []struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
	}

	if _, err := c.get(ctx, market.EndpointItems, c.endpoints.Items, &response); err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(response))
	for _, item := range response {
		entries = append(entries, catalog.Entry{Tag: item.Tag, Name: item.Name})
	}

	return entries, nil
}

// FetchProfitFeed retrieves the Kat upgrade profit records
func (c *ProviderClient) FetchProfitFeed(ctx context.Context) ([]market.ProfitRecord, error) {
	var response []struct {
		OriginAuctionName string  `json:"originAuctionName"`
		ReferenceAuction  string  `json:"referenceAuction"`
		TargetRarity      string  `json:"targetRarity"`
		MaterialCost      float64 `json:"materialCost"`
		PurchaseCost      float64 `json:"purchaseCost"`
		Median            float64 `json:"median"`
		CoreData          struct {
			BaseRarity string  `json:"baseRarity"`
			Hours      float64 `json:"hours"`
			Material   string  `json:"material"`
			Amount     int     `json:"amount"`
			Cost       float64 `json:"cost"`
		} `json:"coreData"`
	}

	if _, err := c.get(ctx, market.EndpointKatProfit, c.endpoints.KatProfit, &response); err != nil {
		return nil, err
	}

	records := make([]market.ProfitRecord, 0, len(response))
	for _, raw := range response {
		targetRarity := raw.TargetRarity
		if targetRarity == "" {
			targetRarity = catalog.IncreaseRarity(raw.CoreData.BaseRarity)
		}
		records = append(records, market.ProfitRecord{
			OriginAuctionName: orNotAvailable(raw.OriginAuctionName),
			ReferenceAuction:  orNotAvailable(raw.ReferenceAuction),
			BaseRarity:        orNotAvailable(raw.CoreData.BaseRarity),
			TargetRarity:      orNotAvailable(targetRarity),
			Hours:             raw.CoreData.Hours,
			Material:          orNotAvailable(raw.CoreData.Material),
			MaterialAmount:    raw.CoreData.Amount,
			MaterialCost:      raw.MaterialCost + raw.PurchaseCost,
			UpgradeCost:       raw.CoreData.Cost,
			Median:            raw.Median,
		})
	}

	return records, nil
}

// FetchSupplyFeed retrieves the low-supply lowest-BIN records
func (c *ProviderClient) FetchSupplyFeed(ctx context.Context) ([]market.SupplyRecord, error) {
	var response []struct {
		Tag      string `json:"tag"`
		LbinData struct {
			Lowest       float64 `json:"lowest"`
			SecondLowest float64 `json:"secondLowest"`
		} `json:"lbinData"`
		Median float64 `json:"median"`
	}

	if _, err := c.get(ctx, market.EndpointLowSupply, c.endpoints.LowSupply, &response); err != nil {
		return nil, err
	}

	records := make([]market.SupplyRecord, 0, len(response))
	for _, raw := range response {
		records = append(records, market.SupplyRecord{
			Tag:          raw.Tag,
			Lowest:       raw.LbinData.Lowest,
			SecondLowest: raw.LbinData.SecondLowest,
			Median:       raw.Median,
		})
	}

	return records, nil
}

// get performs one rate-limited, breaker-guarded GET and decodes the JSON body into result.
// The returned status is 0 when no response was received.
func (c *ProviderClient) get(ctx context.Context, endpoint, target string, result interface{}) (int, error) {
	waitStart := c.clock.Now()
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, market.NewTransportError(endpoint, 0, fmt.Errorf("rate limiter error: %w", err))
	}
	metrics.RecordRateLimitWait(endpoint, c.clock.Now().Sub(waitStart).Seconds())

	status := 0
	var requestErr error
	err := c.breaker.Call(func() error {
		status, requestErr = c.do(ctx, endpoint, target, result)
		// 4xx answers and caller cancellation say nothing about provider health
		if (status >= 400 && status < 500) || ctx.Err() != nil {
			return nil
		}
		return requestErr
	})

	if errors.Is(err, ErrCircuitOpen) {
		metrics.RecordCircuitRejection(endpoint)
		return 0, market.NewTransportError(endpoint, 0, err)
	}

	return status, requestErr
}

func (c *ProviderClient) do(ctx context.Context, endpoint, target string, result interface{}) (int, error) {
	start := c.clock.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, market.NewTransportError(endpoint, 0, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordProviderRequest(endpoint, 0, c.clock.Now().Sub(start).Seconds())
		return 0, market.NewTransportError(endpoint, 0, fmt.Errorf("network error: %w", err))
	}
	defer resp.Body.Close()

	body, err := decodedBody(resp)
	if err != nil {
		metrics.RecordProviderRequest(endpoint, resp.StatusCode, c.clock.Now().Sub(start).Seconds())
		return resp.StatusCode, market.NewTransportError(endpoint, resp.StatusCode, err)
	}
	defer body.Close()

	payload, err := io.ReadAll(body)
	metrics.RecordProviderRequest(endpoint, resp.StatusCode, c.clock.Now().Sub(start).Seconds())
	if err != nil {
		return resp.StatusCode, market.NewTransportError(endpoint, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := payload
		if len(snippet) > maxErrorBodySnippetSize {
			snippet = snippet[:maxErrorBodySnippetSize]
		}
		return resp.StatusCode, market.NewTransportError(endpoint, resp.StatusCode, fmt.Errorf("unexpected status: %s", string(snippet)))
	}

	if err := json.Unmarshal(payload, result); err != nil {
		return resp.StatusCode, market.NewTransportError(endpoint, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	return resp.StatusCode, nil
}

// orNotAvailable substitutes the feed's placeholder for missing text fields
func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}
	return value
}

func withQuery(base, key, value string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint url %q: %w", base, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
