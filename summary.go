package ratebot

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/raykavin/ratebot/pkg/message"
	"github.com/samber/lo"
)

// Summary writes the readings of a cycle as a table
func (r Report) Summary(out io.Writer, labels message.Labels) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Asset", "Current", "Previous", "Fiat", "Change %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := [][]string{
		{labels.PrimarySymbol, cell(r.Current.Primary), cell(r.Previous.Primary), cell(r.Snapshot.PrimaryFiat), cell(r.Snapshot.PrimaryChange)},
		{labels.ConversionPair, cell(r.Current.Conversion), cell(r.Previous.Conversion), "", ""},
		{labels.SecondarySymbol, cell(r.Current.Secondary), cell(r.Previous.Secondary), cell(r.Snapshot.SecondaryFiat), cell(r.Snapshot.SecondaryChange)},
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "Delivered", lo.Ternary(r.Delivered, "yes", "no")})
	table.Render()
}

func cell(p core.Price) string {
	if !p.Valid {
		return message.Placeholder
	}
	return p.Decimal.String()
}
