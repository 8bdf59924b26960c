// Package config loads ratebot settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/message"
	"github.com/raykavin/ratebot/pkg/provider/coingecko"
	"github.com/raykavin/ratebot/pkg/provider/geckoterminal"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// Environment keys
const (
	KeyToken            = "TELEGRAM_BOT_TOKEN"
	KeyChatID           = "CHAT_ID"
	KeySignature        = "CUSTOM_SIGNATURE"
	KeyInterval         = "UPDATE_INTERVAL"
	KeyRequestTimeout   = "REQUEST_TIMEOUT"
	KeyRetainLastKnown  = "RETAIN_LAST_KNOWN"
	KeyTelegramAPIURL   = "TELEGRAM_API_URL"
	KeyCoinGeckoURL     = "COINGECKO_URL"
	KeyGeckoTerminalURL = "GECKOTERMINAL_URL"
	KeyCoinGeckoAPIKey  = "COINGECKO_API_KEY"
	KeyPrimaryAssetID   = "PRIMARY_ASSET_ID"
	KeyPrimarySymbol    = "PRIMARY_SYMBOL"
	KeyFiatAssetID      = "FIAT_ASSET_ID"
	KeyFiatCurrency     = "FIAT_CURRENCY"
	KeySecondaryNetwork = "SECONDARY_NETWORK"
	KeySecondaryPool    = "SECONDARY_POOL"
	KeySecondarySymbol  = "SECONDARY_SYMBOL"
)

const MinInterval = time.Minute

// maxIntervalMinutes is the largest minute count a time.Duration can hold
const maxIntervalMinutes = math.MaxInt64 / int64(time.Minute)

// Config holds everything needed to build a running bot
type Config struct {
	Settings       core.Settings
	Sources        Sources
	RequestTimeout time.Duration
}

// Sources describes the remote APIs and the assets queried on them
type Sources struct {
	CoinGeckoURL     string
	CoinGeckoAPIKey  string // sent as the demo api key header when set
	GeckoTerminalURL string
	PrimaryAssetID   string
	PrimarySymbol    string
	FiatAssetID      string
	FiatCurrency     string
	SecondaryNetwork string
	SecondaryPool    string
	SecondarySymbol  string
}

var fiatSigns = map[string]string{
	"rub": "₽",
	"usd": "$",
	"eur": "€",
	"uah": "₴",
	"kzt": "₸",
}

// Labels derives the message labels from the configured assets
func (s Sources) Labels() message.Labels {
	currency := strings.ToLower(s.FiatCurrency)
	sign, ok := fiatSigns[currency]
	if !ok {
		sign = " " + strings.ToUpper(currency)
	}

	return message.Labels{
		PrimarySymbol:   s.PrimarySymbol,
		SecondarySymbol: s.SecondarySymbol,
		ConversionPair:  "USDT/" + strings.ToUpper(currency),
		FiatSign:        sign,
	}
}

// Load reads the .env file when present, then the environment
func Load(envFiles ...string) (*Config, error) {
	// a missing .env file is fine, variables may come from the environment
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	interval, err := ParseInterval(v.GetString(KeyInterval))
	if err != nil {
		return nil, err
	}

	timeout, err := str2duration.ParseDuration(v.GetString(KeyRequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyRequestTimeout, err)
	}

	cfg := &Config{
		Settings: core.Settings{
			Interval:        interval,
			Signature:       v.GetString(KeySignature),
			RetainLastKnown: v.GetBool(KeyRetainLastKnown),
			Telegram: core.TelegramSettings{
				Token:  strings.TrimSpace(v.GetString(KeyToken)),
				ChatID: strings.TrimSpace(v.GetString(KeyChatID)),
				APIURL: v.GetString(KeyTelegramAPIURL),
			},
		},
		Sources: Sources{
			CoinGeckoURL:     v.GetString(KeyCoinGeckoURL),
			CoinGeckoAPIKey:  strings.TrimSpace(v.GetString(KeyCoinGeckoAPIKey)),
			GeckoTerminalURL: v.GetString(KeyGeckoTerminalURL),
			PrimaryAssetID:   v.GetString(KeyPrimaryAssetID),
			PrimarySymbol:    v.GetString(KeyPrimarySymbol),
			FiatAssetID:      v.GetString(KeyFiatAssetID),
			FiatCurrency:     v.GetString(KeyFiatCurrency),
			SecondaryNetwork: v.GetString(KeySecondaryNetwork),
			SecondaryPool:    v.GetString(KeySecondaryPool),
			SecondarySymbol:  v.GetString(KeySecondarySymbol),
		},
		RequestTimeout: timeout,
	}

	return cfg, nil
}

// Validate reports the options that must be set before delivering messages
func (c *Config) Validate() error {
	var errs []error

	if c.Settings.Telegram.Token == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyToken))
	}
	if c.Settings.Telegram.ChatID == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyChatID))
	}
	if c.Settings.Interval < MinInterval {
		errs = append(errs, fmt.Errorf("%s must be at least %s", KeyInterval, MinInterval))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyRequestTimeout))
	}

	return errors.Join(errs...)
}

// ParseInterval reads a bare integer as minutes and anything else as a
// duration such as 90s, 1h30m or 1d
func ParseInterval(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)

	if minutes, err := strconv.ParseInt(value, 10, 64); err == nil {
		if minutes > maxIntervalMinutes || minutes < -maxIntervalMinutes {
			return 0, fmt.Errorf("invalid %s %q: more than %d minutes", KeyInterval, value, maxIntervalMinutes)
		}
		return time.Duration(minutes) * time.Minute, nil
	}

	interval, err := str2duration.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", KeyInterval, value, err)
	}

	return interval, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyInterval, "5")
	v.SetDefault(KeyRequestTimeout, "10s")
	v.SetDefault(KeyRetainLastKnown, false)
	v.SetDefault(KeySignature, "")
	v.SetDefault(KeyTelegramAPIURL, "")
	v.SetDefault(KeyCoinGeckoURL, coingecko.DefaultURL)
	v.SetDefault(KeyCoinGeckoAPIKey, "")
	v.SetDefault(KeyGeckoTerminalURL, geckoterminal.DefaultURL)
	v.SetDefault(KeyPrimaryAssetID, "the-open-network")
	v.SetDefault(KeyPrimarySymbol, "TON")
	v.SetDefault(KeyFiatAssetID, "tether")
	v.SetDefault(KeyFiatCurrency, "rub")
	v.SetDefault(KeySecondaryNetwork, "ton")
	v.SetDefault(KeySecondaryPool, "EQBUxfy9mTrgRhVVJZ-DzyD7Ha_YNfRIx7TTOdsEsGfr7YQk")
	v.SetDefault(KeySecondarySymbol, "FREENET")
}
