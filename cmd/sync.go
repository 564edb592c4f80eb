package cmd

import (
	"fmt"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/reconcile"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Close any passed pay periods and advance the schedule",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	today, err := resolveToday()
	if err != nil {
		return err
	}
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	result, err := reconcile.Sync(cfg, today)
	if err != nil {
		return err
	}
	grace := appConfig().Reconcile.ConfirmationGraceDays
	expired := reconcile.ExpirePending(cfg, today, grace)

	if !result.Changed() && !expired {
		fmt.Println("  Nothing to do; the schedule is current.")
		return nil
	}

	if err := fs.Save(cfg); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	for _, p := range result.PeriodsClosed {
		fmt.Printf("  Closed period %d: %s to %s, ending balance %s (variance %s)\n",
			p.PeriodNumber, p.StartDate, p.EndDate,
			cli.FormatMoney(p.EndingBalance), cli.FormatSignedMoney(-p.Variance))
	}
	if result.AutoBalanced {
		fmt.Printf("  Balance auto-set to %s\n", cli.FormatMoney(result.NewBalance))
	}
	if result.PayDateAdvanced {
		fmt.Printf("  Next pay date is now %s\n", cli.FormatDate(cfg.NextPayDate.Time))
	}
	if result.ExpensesAdvanced > 0 {
		fmt.Printf("  Advanced %d expense due dates\n", result.ExpensesAdvanced)
	}
	if expired {
		fmt.Println("  Auto-completed a pending period past its confirmation window")
	}
	if cfg.PendingPeriod() != nil {
		fmt.Println("  " + cli.Muted("Confirm the real ending balance with `glidepath confirm --actual <balance>`."))
	}
	return nil
}
