// Package cmd implements the glidepath CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/config"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/projection"
	"github.com/theirongolddev/glidepath/internal/reconcile"
	"github.com/theirongolddev/glidepath/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagBudgetFile string
	flagAsOf       string
	flagQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "glidepath",
	Short: "Bank balance projection from your pay schedule",
	Long:  "Project your bank balance forward through pay periods, recurring bills, and a savings goal.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBudgetFile, "budget-file", "f", "", "Budget file path (default: data dir)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Evaluate as of this date (YYYY-MM-DD) instead of today")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress sync notices")
}

// appConfig loads application settings, falling back to defaults on error.
func appConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// budgetPath resolves the budget document location: --budget-file wins, then
// the config override, then the default data dir.
func budgetPath() string {
	if flagBudgetFile != "" {
		return flagBudgetFile
	}
	return appConfig().BudgetPath()
}

// resolveToday returns the evaluation date: --as-of if given, else today.
func resolveToday() (time.Time, error) {
	if flagAsOf == "" {
		return calendar.Today(), nil
	}
	d, err := calendar.ParseDate(flagAsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q: %w", flagAsOf, err)
	}
	return d, nil
}

// loadBudget is the shared loading path used by all commands. The returned
// store is reused for saves so every command writes to the same file it read.
func loadBudget() (*model.BudgetConfig, *store.FileStore, error) {
	fs := store.NewFileStore(budgetPath())
	cfg, err := fs.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, fmt.Errorf("no budget found at %s (run `glidepath setup`)", budgetPath())
	}
	return cfg, fs, nil
}

// syncBudget applies any due period transitions before a command runs, and
// persists the document if anything changed. Read commands call this so the
// schedule is never stale on screen.
func syncBudget(cfg *model.BudgetConfig, fs *store.FileStore, today time.Time) error {
	result, err := reconcile.Sync(cfg, today)
	if err != nil {
		return err
	}
	grace := appConfig().Reconcile.ConfirmationGraceDays
	expired := reconcile.ExpirePending(cfg, today, grace)

	if !result.Changed() && !expired {
		return nil
	}
	if err := fs.Save(cfg); err != nil {
		return fmt.Errorf("saving budget after sync: %w", err)
	}
	if !flagQuiet {
		for _, p := range result.PeriodsClosed {
			fmt.Fprintf(os.Stderr, "  Closed period %d (%s to %s)\n",
				p.PeriodNumber, p.StartDate, p.EndDate)
		}
		if result.AutoBalanced {
			fmt.Fprintf(os.Stderr, "  Balance auto-set to %.2f; confirm with `glidepath confirm --actual <balance>`\n",
				result.NewBalance)
		}
	}
	return nil
}

// projectionOptions returns the baseline override when the calculated
// rolling baseline is in effect.
func projectionOptions(cfg *model.BudgetConfig) projection.Options {
	var opts projection.Options
	if calc := reconcile.CalculatedBaseline(cfg); calc != nil {
		opts.BaselineOverride = calc
	}
	return opts
}
