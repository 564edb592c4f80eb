package cmd

import (
	"fmt"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/config"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/reconcile"
	"github.com/theirongolddev/glidepath/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit   int
	flagHistoryArchive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List closed pay periods",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 12, "Number of periods to show (0 = all)")
	historyCmd.Flags().BoolVar(&flagHistoryArchive, "archive", false, "Read from the history archive instead of the budget file")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	var (
		periods []model.HistoricalPeriod
		cfg     *model.BudgetConfig
	)

	if flagHistoryArchive {
		archive, err := store.OpenArchive(config.ArchivePath())
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer func() { _ = archive.Close() }()
		periods, err = archive.ListPeriods(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
	} else {
		var err error
		cfg, _, err = loadBudget()
		if err != nil {
			return err
		}
		periods = cfg.Periods
		// Newest first, like the archive view.
		for i, j := 0, len(periods)-1; i < j; i, j = i+1, j-1 {
			periods[i], periods[j] = periods[j], periods[i]
		}
		if flagHistoryLimit > 0 && len(periods) > flagHistoryLimit {
			periods = periods[:flagHistoryLimit]
		}
	}

	if len(periods) == 0 {
		fmt.Println("  No closed periods yet.")
		return nil
	}

	t := cli.Table{
		Title:   "Period History",
		Headers: []string{"#", "Start", "End", "Ending", "True Spend", "Variance", "Status"},
	}
	for _, p := range periods {
		variance := cli.FormatSignedMoney(-p.Variance)
		if p.Variance > 0 {
			variance = cli.BadStyle.Render(variance)
		} else if p.Variance < 0 {
			variance = cli.GoodStyle.Render(variance)
		}
		status := string(p.Status)
		if p.Status == model.PeriodPendingConfirmation {
			status = cli.WarnStyle.Render("pending")
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", p.PeriodNumber),
			cli.FormatISODate(p.StartDate.Time),
			cli.FormatISODate(p.EndDate.Time),
			cli.FormatMoney(p.EndingBalance),
			cli.FormatMoney(p.TrueSpend),
			variance,
			status,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(t))

	if cfg != nil {
		if avg := reconcile.AverageBaseline(cfg.Periods, cfg.PeriodsForBaselineCalc); avg != nil {
			fmt.Printf("  Rolling baseline over last %d: %s/period\n",
				cfg.PeriodsForBaselineCalc, cli.FormatMoney(*avg))
		}
	}
	return nil
}
