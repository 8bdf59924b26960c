// Package ratebot polls crypto prices on a fixed cadence and posts a
// summary message with fiat prices and the change since the last poll.
package ratebot

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/logger"
	"github.com/raykavin/ratebot/pkg/message"
	"github.com/raykavin/ratebot/pkg/provider"
	"github.com/raykavin/ratebot/pkg/rate"
	"github.com/raykavin/ratebot/pkg/storage"
)

// Sources groups the quote sources polled on every cycle.
// A nil source is reported as absent.
type Sources struct {
	Primary    core.QuoteSource // primary asset in USD
	Conversion core.QuoteSource // USDT to fiat rate
	Secondary  core.QuoteSource // secondary asset in USD
}

// Report describes the outcome of one cycle
type Report struct {
	StartedAt time.Time
	Duration  time.Duration
	Current   core.Readings
	Previous  core.Readings
	Snapshot  rate.Snapshot
	Message   message.Rendered
	Delivered bool
	Err       error
}

// Ratebot drives the fetch, compute, format and deliver cycle
type Ratebot struct {
	settings core.Settings
	sources  Sources
	notifier core.Notifier
	storage  core.StateStore
	labels   message.Labels
	log      logger.Logger

	cycles int
}

// Option is a functional option for configuring a Ratebot instance
type Option func(*Ratebot)

// NewBot creates a new Ratebot instance with the provided settings and dependencies
func NewBot(settings core.Settings, sources Sources, notifier core.Notifier, options ...Option) (*Ratebot, error) {
	if err := validate(settings, sources, notifier); err != nil {
		return nil, err
	}

	bot := &Ratebot{
		settings: settings,
		sources:  sources,
		notifier: notifier,
		labels:   message.DefaultLabels(),
		log:      DefaultLog,
	}

	for _, option := range options {
		option(bot)
	}

	if err := initializeStorage(bot); err != nil {
		return nil, err
	}

	return bot, nil
}

// validate checks the settings and the mandatory collaborators
func validate(settings core.Settings, sources Sources, notifier core.Notifier) error {
	if settings.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", settings.Interval)
	}

	if sources.Primary == nil {
		return errors.New("primary source cannot be nil")
	}

	if notifier == nil {
		return errors.New("notifier cannot be nil")
	}

	return nil
}

// initializeStorage sets up the in-memory state store unless one was provided
func initializeStorage(bot *Ratebot) error {
	if bot.storage != nil {
		return nil
	}

	store, err := storage.FromMemory()
	if err != nil {
		return err
	}

	bot.storage = store
	return nil
}

// Run executes one cycle right away and then one per interval until ctx is
// cancelled. Cycles never overlap: ticks missed during a slow cycle are dropped.
func (n *Ratebot) Run(ctx context.Context) error {
	ticker := time.NewTicker(n.settings.Interval)
	defer ticker.Stop()

	n.log.WithField("interval", n.settings.Interval).Info("scheduler started")
	n.safeCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			n.log.WithField("cycles", n.cycles).Info("scheduler stopped")
			return nil
		case <-ticker.C:
			n.safeCycle(ctx)
		}
	}
}

// safeCycle runs a cycle and recovers from any panic so the loop survives
func (n *Ratebot) safeCycle(ctx context.Context) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report.Err = pkgerrors.WithStack(fmt.Errorf("%w: %v", core.ErrUnexpected, r))
			n.log.WithError(report.Err).Error("cycle aborted")
		}
	}()

	return n.RunCycle(ctx)
}

// RunCycle fetches every source, computes the derived values, delivers the
// message and saves the readings for the next cycle
func (n *Ratebot) RunCycle(ctx context.Context) Report {
	n.cycles++
	report := Report{StartedAt: time.Now()}
	log := n.log.WithField("cycle", n.cycles)

	previous, err := n.storage.Load()
	if err != nil {
		log.WithError(err).Error("failed to load previous readings")
		previous = core.Readings{}
	}
	report.Previous = previous

	report.Current = core.Readings{
		Primary:    provider.Resolve(ctx, log, n.sources.Primary).Price,
		Conversion: provider.Resolve(ctx, log, n.sources.Conversion).Price,
		Secondary:  provider.Resolve(ctx, log, n.sources.Secondary).Price,
	}

	report.Snapshot = rate.Compute(report.Current, previous)
	report.Message = message.Format(report.Snapshot, n.labels, n.settings.Signature)

	if err := n.notifier.Send(ctx, report.Message.Text()); err != nil {
		report.Err = err
		log.WithError(err).Error("failed to deliver message")
	} else {
		report.Delivered = true
	}

	next := report.Current.Next(previous, n.settings.RetainLastKnown)
	if err := n.storage.Save(next); err != nil {
		report.Err = errors.Join(report.Err, err)
		log.WithError(err).Error("failed to save readings")
	}

	report.Duration = time.Since(report.StartedAt)
	log.WithFields(map[string]any{
		"primary":    cell(report.Current.Primary),
		"conversion": cell(report.Current.Conversion),
		"secondary":  cell(report.Current.Secondary),
		"delivered":  report.Delivered,
		"duration":   report.Duration.String(),
	}).Info("cycle completed")

	return report
}

// Cycles returns how many cycles have started
func (n *Ratebot) Cycles() int {
	return n.cycles
}

// Close releases the state store
func (n *Ratebot) Close() error {
	return n.storage.Close()
}
