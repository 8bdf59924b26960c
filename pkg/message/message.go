// Package message renders a rate snapshot into a Telegram Markdown message
package message

import (
	"fmt"
	"strings"

	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/rate"
	"github.com/samber/lo"
)

const (
	UpMarker    = "⬆️"
	DownMarker  = "⬇️"
	Placeholder = "Н/Д"

	lineSeparator = "\n\n"
)

// Labels names the assets shown in the message
type Labels struct {
	PrimarySymbol   string // e.g. TON
	SecondarySymbol string // e.g. FREENET
	ConversionPair  string // e.g. USDT/RUB
	FiatSign        string // e.g. ₽
}

// DefaultLabels matches the default asset configuration
func DefaultLabels() Labels {
	return Labels{
		PrimarySymbol:   "TON",
		SecondarySymbol: "FREENET",
		ConversionPair:  "USDT/RUB",
		FiatSign:        "₽",
	}
}

// Rendered is an immutable message: content lines and an optional signature
type Rendered struct {
	Lines     []string
	Signature string
}

// Text joins the lines with blank lines and appends the signature block
func (r Rendered) Text() string {
	text := strings.Join(r.Lines, lineSeparator)
	if r.Signature != "" {
		text += lineSeparator + r.Signature
	}
	return text
}

// Format builds the message of a cycle. Absent values degrade their own
// line to a placeholder and never suppress the rest of the message.
func Format(snapshot rate.Snapshot, labels Labels, signature string) Rendered {
	lines := []string{
		primaryLine(snapshot, labels),
		conversionLine(snapshot, labels),
		secondaryLine(snapshot, labels),
	}

	return Rendered{
		Lines:     lines,
		Signature: EscapeMarkdown(strings.TrimSpace(signature)),
	}
}

func primaryLine(s rate.Snapshot, labels Labels) string {
	prefix := fmt.Sprintf("💎 %s:", bold("$"+labels.PrimarySymbol))
	if !s.PrimaryUSD.Valid {
		return prefix + " " + Placeholder
	}

	line := fmt.Sprintf("%s %s$ / %s",
		prefix,
		s.PrimaryUSD.Decimal.StringFixed(3),
		fixedOrPlaceholder(s.PrimaryFiat, 3, labels.FiatSign),
	)

	return line + changeSuffix(s.PrimaryChange)
}

func conversionLine(s rate.Snapshot, labels Labels) string {
	return fmt.Sprintf("💵 %s: %s", bold(labels.ConversionPair), fixedOrPlaceholder(s.Conversion, 2, labels.FiatSign))
}

func secondaryLine(s rate.Snapshot, labels Labels) string {
	prefix := fmt.Sprintf("🌐 %s:", bold("$"+labels.SecondarySymbol))
	if !s.SecondaryUSD.Valid || !s.SecondaryFiat.Valid {
		return prefix + " " + Placeholder
	}

	line := fmt.Sprintf("%s %s$ / %s%s",
		prefix,
		s.SecondaryUSD.Decimal.StringFixed(6),
		s.SecondaryFiat.Decimal.StringFixed(6),
		EscapeMarkdown(labels.FiatSign),
	)

	return line + changeSuffix(s.SecondaryChange)
}

// changeSuffix renders " ⬆️ 1.23%" with the absolute value, or nothing when absent
func changeSuffix(change core.Price) string {
	if !change.Valid {
		return ""
	}

	marker := lo.Ternary(change.Decimal.IsNegative(), DownMarker, UpMarker)
	return fmt.Sprintf(" %s %s%%", marker, change.Decimal.Abs().StringFixed(2))
}

func fixedOrPlaceholder(value core.Price, places int32, sign string) string {
	if !value.Valid {
		return Placeholder
	}
	return value.Decimal.StringFixed(places) + EscapeMarkdown(sign)
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// EscapeMarkdown escapes the Telegram Markdown metacharacters _ * ` [ so
// text outside an entity is sent literally
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// bold wraps text in a bold entity. Escaping is not allowed inside entities,
// so a literal * closes the entity and reopens it after the escaped star.
func bold(text string) string {
	parts := strings.Split(text, "*")
	for i, part := range parts {
		if part != "" {
			parts[i] = "*" + part + "*"
		}
	}
	return strings.Join(parts, `\*`)
}
