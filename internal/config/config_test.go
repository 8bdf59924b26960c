package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets keys for the duration of the test, restoring them afterwards
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var allKeys = []string{
	KeyToken, KeyChatID, KeySignature, KeyInterval, KeyRequestTimeout, KeyRetainLastKnown,
	KeyTelegramAPIURL, KeyCoinGeckoURL, KeyCoinGeckoAPIKey, KeyGeckoTerminalURL, KeyPrimaryAssetID, KeyPrimarySymbol,
	KeyFiatAssetID, KeyFiatCurrency, KeySecondaryNetwork, KeySecondaryPool, KeySecondarySymbol,
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, allKeys...)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Settings.Interval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Settings.Signature)
	assert.False(t, cfg.Settings.RetainLastKnown)
	assert.Equal(t, "the-open-network", cfg.Sources.PrimaryAssetID)
	assert.Equal(t, "tether", cfg.Sources.FiatAssetID)
	assert.Equal(t, "rub", cfg.Sources.FiatCurrency)
	assert.Equal(t, "EQBUxfy9mTrgRhVVJZ-DzyD7Ha_YNfRIx7TTOdsEsGfr7YQk", cfg.Sources.SecondaryPool)
	assert.Equal(t, "https://api.coingecko.com", cfg.Sources.CoinGeckoURL)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyToken)
	assert.Contains(t, err.Error(), KeyChatID)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(KeyToken, " 123:abc ")
	t.Setenv(KeyChatID, "@prices")
	t.Setenv(KeySignature, "— MyBot")
	t.Setenv(KeyInterval, "15")
	t.Setenv(KeyRequestTimeout, "3s")
	t.Setenv(KeyRetainLastKnown, "true")
	t.Setenv(KeyFiatCurrency, "EUR")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "123:abc", cfg.Settings.Telegram.Token)
	assert.Equal(t, "@prices", cfg.Settings.Telegram.ChatID)
	assert.Equal(t, "— MyBot", cfg.Settings.Signature)
	assert.Equal(t, 15*time.Minute, cfg.Settings.Interval)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Settings.RetainLastKnown)

	labels := cfg.Sources.Labels()
	assert.Equal(t, "USDT/EUR", labels.ConversionPair)
	assert.Equal(t, "€", labels.FiatSign)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t, allKeys...)

	path := filepath.Join(t.TempDir(), ".env")
	content := "TELEGRAM_BOT_TOKEN=from-file\nCHAT_ID=-100123\nUPDATE_INTERVAL=1h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "from-file", cfg.Settings.Telegram.Token)
	assert.Equal(t, "-100123", cfg.Settings.Telegram.ChatID)
	assert.Equal(t, time.Hour, cfg.Settings.Interval)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(KeyInterval, "often")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)

	t.Setenv(KeyInterval, "5")
	t.Setenv(KeyRequestTimeout, "soon")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	cases := map[string]time.Duration{
		"5":     5 * time.Minute,
		" 1 ":   time.Minute,
		"90s":   90 * time.Second,
		"1h30m": 90 * time.Minute,
		"1d":    24 * time.Hour,
	}

	for value, expected := range cases {
		interval, err := ParseInterval(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, interval, value)
	}
}

func TestParseInterval_TooLarge(t *testing.T) {
	_, err := ParseInterval("153722868")
	require.ErrorContains(t, err, "more than 153722867 minutes")

	interval, err := ParseInterval("153722867")
	require.NoError(t, err)
	assert.Positive(t, interval)

	_, err = ParseInterval("99999999999999999999")
	require.ErrorContains(t, err, KeyInterval)
}

func TestLoad_CoinGeckoAPIKey(t *testing.T) {
	clearEnv(t, allKeys...)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Sources.CoinGeckoAPIKey)

	t.Setenv(KeyCoinGeckoAPIKey, " CG-demo ")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "CG-demo", cfg.Sources.CoinGeckoAPIKey)
}

func TestValidate_MinimumInterval(t *testing.T) {
	cfg := &Config{RequestTimeout: time.Second}
	cfg.Settings.Telegram.Token = "t"
	cfg.Settings.Telegram.ChatID = "c"
	cfg.Settings.Interval = 30 * time.Second

	require.ErrorContains(t, cfg.Validate(), KeyInterval)

	cfg.Settings.Interval = time.Minute
	require.NoError(t, cfg.Validate())
}

func TestSources_LabelsUnknownCurrency(t *testing.T) {
	labels := Sources{PrimarySymbol: "TON", SecondarySymbol: "FREENET", FiatCurrency: "try"}.Labels()
	assert.Equal(t, "USDT/TRY", labels.ConversionPair)
	assert.Equal(t, " TRY", labels.FiatSign)
}
