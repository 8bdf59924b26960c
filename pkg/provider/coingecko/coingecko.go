// Package coingecko queries the CoinGecko simple price index
package coingecko

import (
	"net/url"
	"strings"
	"time"

	"github.com/raykavin/ratebot/pkg/provider"
)

const (
	Name       = "coingecko"
	DefaultURL = "https://api.coingecko.com"

	// APIKeyHeader carries a demo plan key, raising the public rate limit
	APIKeyHeader = "x-cg-demo-api-key"
)

// NewClient creates an HTTP client that authenticates with apiKey when it is set
func NewClient(timeout time.Duration, apiKey string) *provider.Client {
	client := provider.NewClient(timeout)
	if apiKey != "" {
		client.Headers = map[string]string{APIKeyHeader: apiKey}
	}
	return client
}

// New creates a source for the price of assetID quoted in vsCurrency.
// The response shape is {"<assetID>": {"<vsCurrency>": <number>}}.
func New(baseURL, assetID, vsCurrency, symbol string, client *provider.Client) *provider.PathSource {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	assetID = strings.ToLower(assetID)
	vsCurrency = strings.ToLower(vsCurrency)

	query := url.Values{
		"ids":           {assetID},
		"vs_currencies": {vsCurrency},
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/api/v3/simple/price?" + query.Encode()
	path := provider.EscapePath(assetID) + "." + provider.EscapePath(vsCurrency)

	return provider.NewPathSource(Name, symbol, endpoint, path, client)
}
