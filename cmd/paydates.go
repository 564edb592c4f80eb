package cmd

import (
	"fmt"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/schedule"

	"github.com/spf13/cobra"
)

var flagPayDatesCount int

var payDatesCmd = &cobra.Command{
	Use:   "paydates",
	Short: "List upcoming pay dates",
	RunE:  runPayDates,
}

func init() {
	payDatesCmd.Flags().IntVarP(&flagPayDatesCount, "count", "n", 10, "Number of pay dates to show")
	rootCmd.AddCommand(payDatesCmd)
}

func runPayDates(_ *cobra.Command, _ []string) error {
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

	dates := schedule.PayDates(cfg, flagPayDatesCount)
	if len(dates) == 0 {
		fmt.Println("  No pay dates; check the pay schedule with `glidepath config show`.")
		return nil
	}

	t := cli.Table{
		Title:   fmt.Sprintf("Pay Dates (%s)", cfg.PaycheckFrequency),
		Headers: []string{"Date", "Day", "When"},
	}
	for _, d := range dates {
		t.Rows = append(t.Rows, []string{
			cli.FormatISODate(d),
			d.Weekday().String(),
			cli.FormatDays(calendar.DaysBetween(today, d)),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(t))
	return nil
}
