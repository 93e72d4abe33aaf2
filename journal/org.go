package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatEntryOrg renders an entry as an org-mode block. Structured facts
// go in the PROPERTIES drawer; the Notes heading is left for the reader.
func FormatEntryOrg(e EntryRecord) string {
	heading := fmt.Sprintf("** %s %s %s (%s)", strings.ToUpper(e.Kind), e.Side, e.Symbol, shortID(e.EntryID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ENTRY_ID: %s\n", e.EntryID))
	b.WriteString(fmt.Sprintf(":POSITION_ID: %s\n", e.PositionID))
	b.WriteString(fmt.Sprintf(":SESSION_ID: %s\n", e.SessionID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", e.Symbol))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", e.Time.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":ACTION: %s\n", e.Action))
	b.WriteString(fmt.Sprintf(":QUANTITY: %d\n", e.Quantity))
	b.WriteString(fmt.Sprintf(":PRICE: %s\n", e.Price.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %s\n", e.StopLoss.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":TARGET_PRICE: %s\n", e.TargetPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":BALANCE: %s\n", e.Balance.StringFixed(2)))
	if e.IsClose() {
		b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", e.EntryPrice.StringFixed(2)))
		if e.PnL.Valid {
			b.WriteString(fmt.Sprintf(":PNL: %s\n", e.PnL.Decimal.StringFixed(2)))
		}
		b.WriteString(fmt.Sprintf(":REASON: %s\n", e.Reason))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatEntriesOrg renders multiple entries separated by blank lines.
func FormatEntriesOrg(entries []EntryRecord) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
