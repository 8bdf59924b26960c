// Package provider fetches asset prices from public JSON APIs.
//
// Every source issues a single GET per cycle and reads one numeric field
// at a fixed gjson path. Failures never escape Resolve: they are logged
// and turned into an absent price.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// PathSource reads a price at a fixed JSON path of a fixed endpoint
type PathSource struct {
	name   string
	asset  string
	url    string
	path   string
	client *Client
}

// NewPathSource creates a source. A nil client gets the default timeout.
func NewPathSource(name, asset, url, path string, client *Client) *PathSource {
	if client == nil {
		client = NewClient(DefaultTimeout)
	}

	return &PathSource{
		name:   name,
		asset:  asset,
		url:    url,
		path:   path,
		client: client,
	}
}

func (s *PathSource) Name() string  { return s.name }
func (s *PathSource) Asset() string { return s.asset }
func (s *PathSource) URL() string   { return s.url }
func (s *PathSource) Path() string  { return s.path }

// Fetch implements core.QuoteSource
func (s *PathSource) Fetch(ctx context.Context) (core.Price, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return core.NoPrice, err
	}

	return ExtractPrice(body, s.path)
}

// ExtractPrice reads a strictly positive decimal at path. Both JSON numbers
// and numeric strings are accepted.
func ExtractPrice(body []byte, path string) (core.Price, error) {
	if !gjson.ValidBytes(body) {
		return core.NoPrice, fmt.Errorf("%w: malformed json", core.ErrFieldMissing)
	}

	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return core.NoPrice, fmt.Errorf("%w: %s", core.ErrFieldMissing, path)
	}

	var raw string
	switch result.Type {
	case gjson.Number:
		raw = result.Raw
	case gjson.String:
		raw = strings.TrimSpace(result.Str)
	default:
		return core.NoPrice, fmt.Errorf("%w: %s is %s", core.ErrInvalidPrice, path, result.Type)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return core.NoPrice, fmt.Errorf("%w: %q", core.ErrInvalidPrice, raw)
	}

	if !value.IsPositive() {
		return core.NoPrice, fmt.Errorf("%w: %s", core.ErrInvalidPrice, value)
	}

	return core.NewPrice(value), nil
}

// EscapePath escapes gjson metacharacters so an API key can be used as a path component
func EscapePath(component string) string {
	var sb strings.Builder
	for _, r := range component {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Resolve fetches from source and converts any failure into an absent price.
// A nil source is treated as a disabled one.
func Resolve(ctx context.Context, log logger.Logger, source core.QuoteSource) core.Quote {
	if source == nil {
		return core.Quote{Price: core.NoPrice}
	}

	quote := core.Quote{Asset: source.Asset(), FetchedAt: time.Now()}

	price, err := source.Fetch(ctx)
	if err != nil {
		fetchErr := &core.FetchError{Source: source.Name(), Asset: source.Asset(), Err: err}
		log.WithError(fetchErr).
			WithFields(map[string]any{"source": source.Name(), "asset": source.Asset()}).
			Error("failed to fetch quote")
		quote.Price = core.NoPrice
		return quote
	}

	quote.Price = price
	log.WithFields(map[string]any{
		"source": source.Name(),
		"asset":  source.Asset(),
		"price":  price.Decimal.String(),
	}).Debug("quote fetched")

	return quote
}
