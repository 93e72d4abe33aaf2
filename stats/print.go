package stats

import (
	"fmt"
	"io"

	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
)

// Undefined is printed for averages and ratios with nothing behind them.
const Undefined = "-"

// FormatNull renders v with places decimals, or Undefined.
func FormatNull(v decimal.NullDecimal, places int32) string {
	if !v.Valid {
		return Undefined
	}
	return v.Decimal.StringFixed(places)
}

// Print writes the session performance block.
func Print(w io.Writer, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Session Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %s%%\n", s.WinRate.Mul(hundred).StringFixed(1))
	fmt.Fprintf(w, "Avg Win:       %s\n", FormatNull(s.AverageWin, 2))
	fmt.Fprintf(w, "Avg Loss:      %s\n", FormatNull(s.AverageLoss, 2))
	fmt.Fprintf(w, "Profit Factor: %s\n", FormatNull(s.ProfitFactor, 2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance: %s\n", s.StartBalance.StringFixed(2))
	fmt.Fprintf(w, "End Balance:   %s\n", s.EndBalance.StringFixed(2))
	fmt.Fprintf(w, "Net P/L:       %s\n", s.NetPL.StringFixed(2))
	fmt.Fprintf(w, "Return:        %s%%\n", s.ReturnPct.StringFixed(2))
	fmt.Fprintf(w, "Max Drawdown:  %s%%\n", s.MaxDrawdown.StringFixed(1))
	fmt.Fprintln(w)
}

// PrintEntries writes a fixed-width table of trade log entries.
func PrintEntries(w io.Writer, entries []sim.Entry) {
	fmt.Fprintf(w, "%-20s %-34s %12s %8s %14s %12s\n", "Time", "Action", "Price", "Qty", "Balance", "P/L")
	for _, e := range entries {
		pl := ""
		if e.IsClose() {
			pl = e.PnL.StringFixed(2)
		}
		fmt.Fprintf(w, "%-20s %-34s %12s %8d %14s %12s\n",
			e.Time.Format("2006-01-02 15:04:05"),
			e.Action,
			e.Price.StringFixed(2),
			e.Quantity,
			e.Balance.StringFixed(2),
			pl,
		)
	}
}
