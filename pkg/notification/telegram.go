// Package notification delivers rendered messages to a Telegram chat
package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jpillora/backoff"
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/logger"
	tb "gopkg.in/tucnak/telebot.v2"
)

const defaultConnectAttempts = 3

// chatRecipient addresses a chat by numeric id or @username
type chatRecipient string

func (c chatRecipient) Recipient() string {
	return string(c)
}

// Telegram implements the core.Notifier interface
type Telegram struct {
	client *tb.Bot
	chat   chatRecipient
	log    logger.Logger

	httpClient      *http.Client
	backoff         *backoff.Backoff
	connectAttempts int
}

// Option is a function that configures a telegram instance
type Option func(telegram *Telegram)

// WithHTTPClient sets the client used to reach the Bot API
func WithHTTPClient(client *http.Client) Option {
	return func(t *Telegram) {
		t.httpClient = client
	}
}

// WithConnectRetry controls how the startup handshake is retried
func WithConnectRetry(attempts int, b *backoff.Backoff) Option {
	return func(t *Telegram) {
		t.connectAttempts = attempts
		if b != nil {
			t.backoff = b
		}
	}
}

// NewTelegram creates the Telegram client and checks the token against the Bot API.
// The handshake is retried a bounded number of times, only at startup.
func NewTelegram(ctx context.Context, settings core.TelegramSettings, log logger.Logger, options ...Option) (*Telegram, error) {
	if settings.Token == "" {
		return nil, errors.New("telegram token cannot be empty")
	}
	if settings.ChatID == "" {
		return nil, errors.New("telegram chat id cannot be empty")
	}

	bot := &Telegram{
		chat:            chatRecipient(settings.ChatID),
		log:             log.WithField("chat", settings.ChatID),
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		backoff:         setupBackoffRetry(),
		connectAttempts: defaultConnectAttempts,
	}

	for _, option := range options {
		option(bot)
	}

	client, err := bot.connect(ctx, tb.Settings{
		URL:       settings.APIURL,
		Token:     settings.Token,
		ParseMode: tb.ModeMarkdown,
		Client:    bot.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot.client = client
	bot.log.WithField("username", client.Me.Username).Info("telegram bot initialized")

	return bot, nil
}

// setupBackoffRetry creates a backoff with sensible defaults
func setupBackoffRetry() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}
}

func (t *Telegram) connect(ctx context.Context, settings tb.Settings) (*tb.Bot, error) {
	attempts := max(t.connectAttempts, 1)
	t.backoff.Reset()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := tb.NewBot(settings)
		if err == nil {
			return client, nil
		}

		lastErr = err
		if attempt == attempts {
			break
		}

		wait := t.backoff.Duration()
		t.log.WithError(err).
			WithFields(map[string]any{"attempt": attempt, "retry_in": wait.String()}).
			Warn("telegram handshake failed")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

// Send delivers text to the configured chat with Markdown and no link previews
func (t *Telegram) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return &core.DeliveryError{Chat: t.chat.Recipient(), Err: err}
	}

	_, err := t.client.Send(t.chat, text, &tb.SendOptions{
		ParseMode:             tb.ModeMarkdown,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return &core.DeliveryError{Chat: t.chat.Recipient(), Err: err}
	}

	t.log.Debug("message delivered")
	return nil
}
