package cmd

import (
	"fmt"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/projection"

	"github.com/spf13/cobra"
)

var (
	flagProjectionPeriods int
	flagProjectionDetail  bool
)

var projectionCmd = &cobra.Command{
	Use:     "projection",
	Aliases: []string{"proj"},
	Short:   "Show the period-by-period balance forecast",
	RunE:    runProjection,
}

func init() {
	projectionCmd.Flags().IntVarP(&flagProjectionPeriods, "periods", "n", 0, "Number of periods to show (default from config)")
	projectionCmd.Flags().BoolVar(&flagProjectionDetail, "detail", false, "List the expense items inside each period")
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(_ *cobra.Command, _ []string) error {
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
	if len(entries) == 0 {
		fmt.Println("  Nothing to project; check the pay schedule with `glidepath config show`.")
		return nil
	}

	limit := flagProjectionPeriods
	if limit <= 0 {
		limit = appConfig().General.ProjectionRows
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	t := cli.Table{
		Title:   "Projection",
		Headers: []string{"Period", "Pay Date", "Income", "Bills", "Ad-hoc", "After Bills", "After Baseline"},
	}
	for _, e := range entries {
		period := fmt.Sprintf("%d", e.PeriodNumber)
		if e.PeriodNumber == 0 {
			period = "now"
		}
		adhoc := e.AdHocIncome - e.AdHocExpenses
		adhocCell := ""
		if adhoc != 0 {
			adhocCell = cli.FormatSignedMoney(adhoc)
		}
		after := cli.FormatMoney(e.BalanceAfterBaseline)
		if cfg.SavingsGoal > 0 && e.BalanceAfterBaseline >= cfg.SavingsGoal {
			after = cli.GoodStyle.Render(after)
		} else if e.BalanceAfterBaseline < 0 {
			after = cli.BadStyle.Render(after)
		}
		t.Rows = append(t.Rows, []string{
			period,
			cli.FormatISODate(e.PayDate),
			cli.FormatMoney(e.Income),
			cli.FormatMoney(e.RecurringExpenses),
			adhocCell,
			cli.FormatMoney(e.BalanceAfterExpenses),
			after,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(t))

	if flagProjectionDetail {
		for _, e := range entries {
			if len(e.ExpenseItems) == 0 {
				continue
			}
			fmt.Printf("  Period %d (%s to %s):\n", e.PeriodNumber,
				cli.FormatISODate(e.StartDate), cli.FormatISODate(e.EndDate))
			for _, item := range e.ExpenseItems {
				fmt.Printf("    %s  %s  %s\n", cli.FormatISODate(item.Date),
					cli.FormatMoney(item.Amount), item.Name)
			}
		}
		fmt.Println()
	}
	return nil
}
