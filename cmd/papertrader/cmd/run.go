package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rustyeddy/papertrader/config"
	"github.com/rustyeddy/papertrader/internal/logger"
	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/runner"
	"github.com/rustyeddy/papertrader/signal"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/rustyeddy/papertrader/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a paper-trading session from a config file",
	Long: `Replay the configured feed through a simulated account.

Each tick is logged; the session summary is printed when the feed ends or
the run is interrupted.

Example:
  papertrader run -f session.yaml`,
	RunE: runRun,
}

var (
	runConfigPath string
	runRecent     int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "file", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().IntVar(&runRecent, "recent", 10, "number of recent trade log entries to print")
	runCmd.MarkFlagRequired("file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer log.Sync()

	tracer, err := logger.NewTracer(cfg.Log.Tracing, nil)
	if err != nil {
		return fmt.Errorf("start tracer: %w", err)
	}
	defer tracer.Shutdown(context.Background())

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	from, to, err := cfg.Feed.Range()
	if err != nil {
		return err
	}
	feed, err := market.NewCSVFeed(cfg.Feed.Path, market.FeedOptions{Symbol: cfg.Strategy.Symbol, From: from, To: to})
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer feed.Close()

	rec, err := signal.New(cfg.Spec())
	if err != nil {
		return err
	}

	balance := cfg.Account.Balance
	if cfg.Account.RandomBalance {
		balance = sim.RandomBalance(rand.New(rand.NewSource(time.Now().UnixNano())).Intn)
	}
	ledger, err := sim.NewLedger(balance)
	if err != nil {
		return err
	}

	interval, _ := cfg.Scheduler.IntervalDuration()
	backoff, _ := cfg.Scheduler.ErrorBackoffDuration()

	r := runner.New(ledger, feed, rec, runner.Options{
		Symbol:       cfg.Strategy.Symbol,
		Recommender:  cfg.Recommender.Type,
		FeedName:     filepath.Base(cfg.Feed.Path),
		RiskPercent:  cfg.Strategy.RiskPercent,
		Interval:     interval,
		ErrorBackoff: backoff,
		CloseAtEnd:   cfg.Scheduler.CloseAtEnd,
		OrgFile:      cfg.Journal.OrgFile,
	},
		runner.WithJournal(j),
		runner.WithLogger(log),
		runner.WithTracer(tracer),
		runner.WithReporter(logReporter(log)),
	)

	ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = r.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		_, err = r.Finish(context.Background())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSession %s\n", r.SessionID())
	stats.Print(out, stats.FromLedger(r.Ledger()))
	if recent := stats.Recent(r.Ledger().TradeLog(), runRecent); len(recent) > 0 {
		fmt.Fprintln(out)
		stats.PrintEntries(out, recent)
	}
	return nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.EntriesFile, cfg.BalanceFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	case "postgres":
		return journal.NewPostgres(cfg.DSN)
	case "none", "":
		return journal.Discard{}, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
}

// logReporter logs every tick at debug and ticks that traded at info.
func logReporter(log *zap.Logger) runner.Reporter {
	return runner.ReporterFunc(func(s runner.Snapshot) {
		if s.Missing {
			return
		}
		fields := []zap.Field{
			zap.Time("time", s.Time),
			zap.Stringer("price", s.Price),
			zap.String("recommendation", s.Recommendation.Label),
			zap.Stringer("state", s.State),
			zap.String("balance", s.Balance.StringFixed(2)),
			zap.String("equity", s.Equity.StringFixed(2)),
		}
		if s.HasPosition {
			fields = append(fields,
				zap.String("unrealized", s.UnrealizedPnL.StringFixed(2)),
				zap.String("progress", s.Progress.Mul(hundred).StringFixed(1)))
		}
		if len(s.Entries) > 0 {
			log.Info("tick", fields...)
			return
		}
		log.Debug("tick", fields...)
	})
}
