package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

// maxFlagged is the most flagged inputs listed in a summary message
const maxFlagged = 10

// summaryLabels is the order labels are reported in
var summaryLabels = []types.Label{
	types.LabelGoodSafe,
	types.LabelSuspicious,
	types.LabelLowQuality,
	types.LabelError,
}

// BulkSummary builds a Block Kit message with per-label counts and the first
// flagged inputs of a bulk scan
func BulkSummary(rows []types.Row) Message {
	counts := lo.CountValuesBy(rows, func(r types.Row) types.Label { return r.Label })

	fields := lo.Map(summaryLabels, func(l types.Label, _ int) TextObject {
		return TextObject{Type: textMarkdown, Text: fmt.Sprintf("*%s*\n%d", l, counts[l])}
	})

	msg := Message{
		Text: fmt.Sprintf("Bulk scan finished: %d sites, %d low quality, %d suspicious",
			len(rows), counts[types.LabelLowQuality], counts[types.LabelSuspicious]),
		Blocks: []Block{
			{
				Type: blockHeader,
				Text: &TextObject{Type: textPlain, Text: fmt.Sprintf("Bulk scan: %d sites", len(rows))},
			},
			{
				Type:   blockSection,
				Fields: fields,
			},
		},
	}

	flagged := lo.Filter(rows, func(r types.Row, _ int) bool {
		return r.Label == types.LabelLowQuality || r.Label == types.LabelSuspicious
	})

	if len(flagged) == 0 {
		return msg
	}

	var b strings.Builder

	for _, r := range lo.Slice(flagged, 0, maxFlagged) {
		fmt.Fprintf(&b, "• `%s` %s (%d)\n", r.Input, r.Label, r.Score)
	}

	if extra := len(flagged) - maxFlagged; extra > 0 {
		fmt.Fprintf(&b, "…and %d more\n", extra)
	}

	msg.Blocks = append(msg.Blocks,
		Block{Type: blockDivider},
		Block{
			Type: blockSection,
			Text: &TextObject{Type: textMarkdown, Text: strings.TrimRight(b.String(), "\n")},
		},
	)

	return msg
}

// Notify posts the summary of a bulk scan
func (c *Client) Notify(ctx context.Context, rows []types.Row) error {
	return c.Send(ctx, BulkSummary(rows))
}
