package core

import "time"

// Settings represents the main configuration for the application
type Settings struct {
	Interval        time.Duration    // Delay between two cycles
	Signature       string           // Optional text appended to every message
	RetainLastKnown bool             // Keep the previous reading when a fetch fails
	Telegram        TelegramSettings // Telegram delivery settings
}

// TelegramSettings holds configuration for Telegram integration
type TelegramSettings struct {
	Token  string // Telegram bot token
	ChatID string // Destination chat, numeric id or @channel username
	APIURL string // Bot API base url, empty means the public endpoint
}
