package ratebot

import (
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/logger"
	"github.com/raykavin/ratebot/pkg/message"
)

// WithStorage sets the state store, by default an in-memory buntdb is used
func WithStorage(storage core.StateStore) Option {
	return func(bot *Ratebot) {
		bot.storage = storage
	}
}

// WithLogger replaces DefaultLog for this bot
func WithLogger(log logger.Logger) Option {
	return func(bot *Ratebot) {
		bot.log = log
	}
}

// WithLabels sets the asset names shown in messages
func WithLabels(labels message.Labels) Option {
	return func(bot *Ratebot) {
		bot.labels = labels
	}
}

// WithRetainLastKnown keeps the last good reading when a fetch fails,
// instead of resetting the baseline to absent
func WithRetainLastKnown(retain bool) Option {
	return func(bot *Ratebot) {
		bot.settings.RetainLastKnown = retain
	}
}
