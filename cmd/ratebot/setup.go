package main

import (
	"context"
	"fmt"
	"io"

	"github.com/raykavin/ratebot"
	"github.com/raykavin/ratebot/internal/config"
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/logger"
	"github.com/raykavin/ratebot/pkg/message"
	"github.com/raykavin/ratebot/pkg/notification"
	"github.com/raykavin/ratebot/pkg/provider"
	"github.com/raykavin/ratebot/pkg/provider/coingecko"
	"github.com/raykavin/ratebot/pkg/provider/geckoterminal"
)

// setup loads the configuration and wires sources, notifier and bot.
// A dry run writes messages to out and needs no Telegram credentials.
// Logs go to logOut.
func setup(ctx context.Context, dry bool, out, logOut io.Writer) (*ratebot.Ratebot, message.Labels, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, message.Labels{}, err
	}

	// the .env file may carry RATEBOT_LOG_* keys, so the logger is rebuilt after loading it
	log, err := buildLogger(logOut)
	if err != nil {
		return nil, message.Labels{}, err
	}
	ratebot.DefaultLog = log

	if !dry {
		if err := cfg.Validate(); err != nil {
			return nil, message.Labels{}, err
		}
	}

	notifier, err := buildNotifier(ctx, cfg, log, dry, out)
	if err != nil {
		return nil, message.Labels{}, err
	}

	labels := cfg.Sources.Labels()
	bot, err := ratebot.NewBot(
		cfg.Settings,
		buildSources(cfg),
		notifier,
		ratebot.WithLogger(log),
		ratebot.WithLabels(labels),
	)
	if err != nil {
		return nil, message.Labels{}, err
	}

	return bot, labels, nil
}

// buildLogger reads RATEBOT_LOG_* and applies the --log-level override
func buildLogger(out io.Writer) (logger.Logger, error) {
	log, err := ratebot.NewLogger(out)
	if err != nil {
		return nil, fmt.Errorf("invalid log settings: %w", err)
	}

	if logLevel != "" {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		log.SetLevel(level)
	}

	return log, nil
}

func buildSources(cfg *config.Config) ratebot.Sources {
	client := provider.NewClient(cfg.RequestTimeout)
	cgClient := coingecko.NewClient(cfg.RequestTimeout, cfg.Sources.CoinGeckoAPIKey)
	src := cfg.Sources

	return ratebot.Sources{
		Primary:    coingecko.New(src.CoinGeckoURL, src.PrimaryAssetID, "usd", src.PrimarySymbol, cgClient),
		Conversion: coingecko.New(src.CoinGeckoURL, src.FiatAssetID, src.FiatCurrency, src.Labels().ConversionPair, cgClient),
		Secondary:  geckoterminal.New(src.GeckoTerminalURL, src.SecondaryNetwork, src.SecondaryPool, src.SecondarySymbol, client),
	}
}

func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger, dry bool, out io.Writer) (core.Notifier, error) {
	if dry {
		return notification.NewWriter(out), nil
	}

	return notification.NewTelegram(ctx, cfg.Settings.Telegram, log)
}
