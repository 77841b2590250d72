package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProviders serves canned responses for all four feeds; catalogDown makes /items fail
func fakeProviders(t *testing.T, catalogDown bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auctions":
			if r.URL.Query().Get("page") != "1" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(`{"success": true, "auctions": [
			  {"uuid": "a1", "auctioneer": "s1", "item_name": "Hyperion", "item_lore": "§6Sword", "starting_bid": 1000000, "end": 4102444800000, "bin": true},
			  {"uuid": "a2", "auctioneer": "s2", "item_name": "Dirt", "item_lore": "", "starting_bid": 1, "end": 4102444800000, "bin": true}
			]}`))
		case "/items":
			if catalogDown {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`[{"tag": "WITHER_GOGGLES", "name": "Wither Goggles"}]`))
		case "/kat":
			_, _ = w.Write([]byte(`[{"originAuctionName": "Tiger", "materialCost": 1000000, "purchaseCost": 0, "median": 3000000,
			  "coreData": {"baseRarity": "EPIC", "hours": 24, "material": "Bone", "amount": 8, "cost": 500000}}]`))
		case "/supply":
			_, _ = w.Write([]byte(`[{"tag": "WITHER_GOGGLES", "lbinData": {"lowest": 1000, "secondLowest": 1500}, "median": 3000}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	body := fmt.Sprintf(`
providers:
  auctions_url: %[1]s/auctions
  items_url: %[1]s/items
  kat_profit_url: %[1]s/kat
  low_supply_url: %[1]s/supply
  rate_limit:
    requests: 100
    burst: 10
logging:
  level: error
`, baseURL)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput, verbose, configPath = false, false, ""

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAuctionsCommand_PrintsMatchingListings(t *testing.T) {
	server := fakeProviders(t, false)
	path := writeTestConfig(t, server.URL)

	out, err := execute(t, "--config", path, "auctions", "--keyword", "hyperion", "--bin")

	require.NoError(t, err)
	assert.Contains(t, out, "Hyperion")
	assert.Contains(t, out, "1,000,000")
	assert.NotContains(t, out, "Dirt")
	assert.Contains(t, out, "1 of 1 matching, 2 scanned")
}

func TestAuctionsCommand_RejectsUnknownSortMode(t *testing.T) {
	server := fakeProviders(t, false)
	path := writeTestConfig(t, server.URL)

	_, err := execute(t, "--config", path, "auctions", "--sort", "alphabetical")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort_mode")
}

func TestProfitCommand_JSONOutput(t *testing.T) {
	server := fakeProviders(t, false)
	path := writeTestConfig(t, server.URL)

	out, err := execute(t, "--config", path, "--json", "profit")

	require.NoError(t, err)
	var payload struct {
		State         string `json:"state"`
		Opportunities []struct {
			OriginName   string  `json:"origin_name"`
			TargetRarity string  `json:"target_rarity"`
			Profit       float64 `json:"profit"`
		} `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "READY", payload.State)
	require.Len(t, payload.Opportunities, 1)
	assert.Equal(t, "Tiger", payload.Opportunities[0].OriginName)
	assert.Equal(t, "LEGENDARY", payload.Opportunities[0].TargetRarity)
	assert.Equal(t, 1_500_000.0, payload.Opportunities[0].Profit)
}

func TestSupplyCommand_CatalogUnavailable(t *testing.T) {
	server := fakeProviders(t, true)
	path := writeTestConfig(t, server.URL)

	out, err := execute(t, "--config", path, "supply")

	assert.ErrorIs(t, err, errQueryUnavailable)
	assert.Contains(t, out, "Failed to fetch item data. Please check your connection.")
}

func TestWatchCommand_RunsRequestedRounds(t *testing.T) {
	server := fakeProviders(t, false)
	path := writeTestConfig(t, server.URL)

	out, err := execute(t, "--config", path, "watch", "supply", "--rounds", "2", "--interval", "10ms")

	require.NoError(t, err)
	assert.Contains(t, out, "=== Round 1")
	assert.Contains(t, out, "=== Round 2")
	assert.Contains(t, out, "Wither Goggles")
}
