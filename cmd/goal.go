package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/projection"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show when the savings goal is reached on each balance track",
	RunE:  runGoal,
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(_ *cobra.Command, _ []string) error {
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

	if cfg.SavingsGoal <= 0 {
		fmt.Println("  No savings goal is set.")
		return nil
	}

	entries := projection.Project(cfg, today, projectionOptions(cfg))
	goal := projection.GoalDates(cfg, entries, today)

	fmt.Println()
	fmt.Printf("  Savings goal: %s\n", cli.FormatMoney(cfg.SavingsGoal))
	fmt.Println("  " + cli.RenderGoalBar(cfg.CurrentBalance, cfg.SavingsGoal, 30))
	fmt.Println()

	printGoalTrack("Before bills   ", goal.DateBeforeExpenses, today)
	printGoalTrack("After bills    ", goal.DateAfterExpenses, today)
	printGoalTrack("After baseline ", goal.DateAfterBaseline, today)

	fmt.Println()
	if goal.DateAfterBaseline != nil {
		fmt.Printf("  %d pay periods to go, %s.\n", goal.PeriodsToGoal, cli.FormatDays(goal.DaysToGoal))
	} else {
		fmt.Println("  " + cli.BadStyle.Render("The goal is not reached within the projection horizon."))
	}
	fmt.Println()
	return nil
}

// printGoalTrack renders one goal-crossing line. The three tracks bracket
// the real answer: before-bills is optimistic, after-baseline conservative.
func printGoalTrack(label string, date *time.Time, today time.Time) {
	if date == nil {
		fmt.Printf("  %s %s\n", label, cli.Muted("not reached"))
		return
	}
	days := calendar.DaysBetween(today, *date)
	fmt.Printf("  %s %s  %s\n", label, cli.FormatDate(*date), cli.Muted(cli.FormatDays(days)))
}
