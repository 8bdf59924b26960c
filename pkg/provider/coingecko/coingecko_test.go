package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/raykavin/ratebot/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGecko_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Equal(t, "tether", r.URL.Query().Get("ids"))
		assert.Equal(t, "rub", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"tether":{"rub":92.31}}`))
	}))
	defer server.Close()

	source := New(server.URL+"/", "Tether", "RUB", "USDT/RUB", provider.NewClient(time.Second))
	require.Equal(t, Name, source.Name())
	require.Equal(t, "USDT/RUB", source.Asset())
	require.Equal(t, "tether.rub", source.Path())

	price, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "92.31", price.Decimal.String())
}

func TestCoinGecko_DefaultURL(t *testing.T) {
	source := New("", "the-open-network", "usd", "TON", nil)
	require.Equal(t, DefaultURL+"/api/v3/simple/price?ids=the-open-network&vs_currencies=usd", source.URL())
}

func TestCoinGecko_UnknownAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "unknown", "usd", "UNK", nil).Fetch(context.Background())
	require.Error(t, err)
}

func TestCoinGecko_APIKeyHeader(t *testing.T) {
	keys := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get(APIKeyHeader)
		_, _ = w.Write([]byte(`{"the-open-network":{"usd":5.1}}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "the-open-network", "usd", "TON", NewClient(time.Second, "CG-demo")).
		Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CG-demo", <-keys)

	_, err = New(server.URL, "the-open-network", "usd", "TON", NewClient(time.Second, "")).
		Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, <-keys)
}
