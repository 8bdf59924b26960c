// Package geckoterminal reads the base token price of a liquidity pool.
// It serves assets that are not listed on the main price index.
package geckoterminal

import (
	"net/url"
	"strings"

	"github.com/raykavin/ratebot/pkg/provider"
)

const (
	Name       = "geckoterminal"
	DefaultURL = "https://api.geckoterminal.com"

	pricePath = "data.attributes.base_token_price_usd"
)

// New creates a source for the base token USD price of pool on network
func New(baseURL, network, pool, symbol string, client *provider.Client) *provider.PathSource {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	endpoint := strings.TrimRight(baseURL, "/") +
		"/api/v2/networks/" + url.PathEscape(network) +
		"/pools/" + url.PathEscape(pool)

	return provider.NewPathSource(Name, symbol, endpoint, pricePath, client)
}
