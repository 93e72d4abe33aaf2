package cmd

import (
	"fmt"

	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/rustyeddy/papertrader/stats"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var hundred = decimal.NewFromInt(100)

var statsCmd = &cobra.Command{
	Use:   "stats [session-id]",
	Short: "Print performance statistics for a recorded session",
	Long: `Recompute the performance summary of a session from its journal.

Without a session ID the most recent session is used. Reads SQLite by
default, or Postgres when --dsn is given.

Examples:
  papertrader stats --db papertrader.sqlite
  papertrader stats 01HV... --dsn "host=localhost user=paper dbname=paper"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var (
	statsDBPath string
	statsDSN    string
	statsRecent int
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsDBPath, "db", "d", "./papertrader.sqlite", "path to SQLite journal DB")
	statsCmd.Flags().StringVar(&statsDSN, "dsn", "", "Postgres DSN, overrides --db")
	statsCmd.Flags().IntVar(&statsRecent, "recent", 10, "number of recent entries to print")
}

type readJournal interface {
	journal.Journal
	journal.Reader
}

func openReader() (readJournal, error) {
	if statsDSN != "" {
		return journal.NewPostgres(statsDSN)
	}
	return journal.NewSQLite(statsDBPath)
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := openReader()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	var sessionID string
	if len(args) == 1 {
		sessionID = args[0]
	} else {
		sessions, err := j.ListSessions()
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions recorded")
		}
		sessionID = sessions[0].SessionID
	}

	sum, entries, err := sessionSummary(j, sessionID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s\n", sessionID)
	stats.Print(out, sum)
	if recent := stats.Recent(entries, statsRecent); len(recent) > 0 {
		fmt.Fprintln(out)
		stats.PrintEntries(out, recent)
	}
	return nil
}

func sessionSummary(r journal.Reader, sessionID string) (stats.Summary, []sim.Entry, error) {
	recs, err := r.ListEntries(sessionID)
	if err != nil {
		return stats.Summary{}, nil, fmt.Errorf("query entries: %w", err)
	}
	snaps, err := r.ListBalances(sessionID)
	if err != nil {
		return stats.Summary{}, nil, fmt.Errorf("query balances: %w", err)
	}
	if len(recs) == 0 && len(snaps) == 0 {
		return stats.Summary{}, nil, fmt.Errorf("session %q not found", sessionID)
	}

	entries := make([]sim.Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, fromRecord(rec))
	}
	balances := make([]decimal.Decimal, 0, len(snaps))
	for _, b := range snaps {
		balances = append(balances, b.Balance)
	}
	return stats.Compute(entries, balances), entries, nil
}

func fromRecord(rec journal.EntryRecord) sim.Entry {
	e := sim.Entry{
		ID:          rec.EntryID,
		PositionID:  rec.PositionID,
		Time:        rec.Time,
		Kind:        sim.KindOpen,
		Side:        sim.Long,
		Action:      rec.Action,
		Reason:      rec.Reason,
		Price:       rec.Price,
		Quantity:    rec.Quantity,
		Balance:     rec.Balance,
		PnL:         rec.PnL.Decimal,
		EntryPrice:  rec.EntryPrice,
		StopLoss:    rec.StopLoss,
		TargetPrice: rec.TargetPrice,
	}
	if rec.IsClose() {
		e.Kind = sim.KindClose
	}
	if rec.Side == sim.Short.String() {
		e.Side = sim.Short
	}
	return e
}
