package cmd

import (
	"fmt"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/projection"
	"github.com/theirongolddev/glidepath/internal/reconcile"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the budget at a glance (default command)",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	today, err := resolveToday()
	if err != nil {
		return err
	}
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}
	if err := syncBudget(cfg, fs, today); err != nil {
		return err
	}

	entries := projection.Project(cfg, today, projectionOptions(cfg))
	goal := projection.GoalDates(cfg, entries, today)

	fmt.Println()
	fmt.Println(cli.RenderTitle("glidepath"))
	fmt.Println()

	fmt.Printf("  Balance:       %s", cli.FormatMoney(cfg.CurrentBalance))
	if !cfg.CurrentBalanceAsOf.IsZero() {
		fmt.Printf("  %s", cli.Muted("as of "+cli.FormatDate(cfg.CurrentBalanceAsOf.Time)))
	}
	fmt.Println()

	if !cfg.NextPayDate.IsZero() {
		days := calendar.DaysBetween(today, cfg.NextPayDate.Time)
		fmt.Printf("  Next paycheck: %s of %s  %s\n",
			cli.FormatDate(cfg.NextPayDate.Time),
			cli.FormatMoney(cfg.PaycheckAmount),
			cli.Muted(cli.FormatDays(days)))
	}

	baseline := cfg.BaselineSpendPerPeriod
	baselineNote := "manual estimate"
	if calc := reconcile.CalculatedBaseline(cfg); calc != nil {
		baseline = *calc
		baselineNote = fmt.Sprintf("avg of last %d periods", cfg.PeriodsForBaselineCalc)
	}
	fmt.Printf("  Baseline:      %s/period  %s\n", cli.FormatMoney(baseline), cli.Muted(baselineNote))

	if cfg.SavingsGoal > 0 {
		fmt.Println()
		fmt.Println("  " + cli.RenderGoalBar(cfg.CurrentBalance, cfg.SavingsGoal, 30))
		if goal.DateAfterBaseline != nil {
			fmt.Printf("  Goal reached:  %s  %s\n",
				cli.FormatDate(*goal.DateAfterBaseline),
				cli.Muted(cli.FormatDays(goal.DaysToGoal)))
		} else {
			fmt.Println("  Goal reached:  " + cli.BadStyle.Render("not within projection horizon"))
		}
	}

	if len(entries) > 0 {
		values := make([]float64, 0, len(entries))
		for _, e := range entries {
			values = append(values, e.BalanceAfterBaseline)
		}
		fmt.Println()
		fmt.Printf("  Trajectory:    %s\n", cli.RenderSparkline(values))
	}

	if p := cfg.PendingPeriod(); p != nil {
		fmt.Println()
		fmt.Printf("  %s period %d ended %s with a projected balance of %s.\n",
			cli.WarnStyle.Render("Pending:"), p.PeriodNumber,
			cli.FormatDate(p.EndDate.Time), cli.FormatMoney(p.EndingBalance))
		fmt.Println("  " + cli.Muted("Confirm the real balance with `glidepath confirm --actual <balance>`."))
	}

	fmt.Println()
	return nil
}
