package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/schedule"
	"github.com/theirongolddev/glidepath/internal/store"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	today := calendar.Today()

	fs := store.NewFileStore(budgetPath())
	cfg, err := fs.Load()
	if err != nil {
		return err
	}
	fresh := cfg == nil
	if fresh {
		cfg = &model.BudgetConfig{}
		cfg.ApplyDefaults()
	}

	fmt.Println()
	fmt.Println("  Welcome to glidepath!")
	if !fresh {
		fmt.Printf("  Editing existing budget at %s\n", budgetPath())
	}
	fmt.Println()

	// 1. Current balance
	fmt.Println("  1. Current bank balance")
	if !fresh {
		fmt.Printf("     Current: %s\n", cli.FormatMoney(cfg.CurrentBalance))
	}
	if v, ok := readFloat(reader); ok {
		cfg.CurrentBalance = model.Round2(v)
		cfg.CurrentBalanceAsOf = model.DateOf(today)
		if cfg.BudgetStartDate.IsZero() {
			cfg.BudgetStartDate = model.DateOf(today)
		}
	}
	fmt.Println()

	// 2. Pay frequency
	fmt.Println("  2. Pay frequency")
	fmt.Println("     (1) weekly")
	fmt.Println("     (2) biweekly [default]")
	fmt.Println("     (3) semimonthly (two fixed days)")
	fmt.Println("     (4) monthly (one fixed day)")
	switch readLine(reader) {
	case "1":
		cfg.PaycheckFrequency = calendar.Weekly
	case "3":
		cfg.PaycheckFrequency = calendar.SemiMonthly
	case "4":
		cfg.PaycheckFrequency = calendar.Monthly
	default:
		cfg.PaycheckFrequency = calendar.Biweekly
	}
	fmt.Println()

	switch cfg.PaycheckFrequency {
	case calendar.Weekly, calendar.Biweekly:
		fmt.Println("  3. Next pay date (YYYY-MM-DD)")
		for {
			line := readLine(reader)
			if line == "" && !cfg.NextPayDate.IsZero() {
				break
			}
			d, err := calendar.ParseDate(line)
			if err != nil {
				fmt.Println("     Enter a date like 2026-09-15:")
				continue
			}
			cfg.NextPayDate = model.DateOf(d)
			break
		}
	case calendar.SemiMonthly:
		fmt.Println("  3. First pay day of the month (1-31, 31 = last day)")
		if v, ok := readInt(reader); ok {
			cfg.SemiMonthly.FirstPayDay = v
		} else if cfg.SemiMonthly.FirstPayDay == 0 {
			cfg.SemiMonthly.FirstPayDay = 1
		}
		fmt.Println("     Second pay day of the month")
		if v, ok := readInt(reader); ok {
			cfg.SemiMonthly.SecondPayDay = v
		} else if cfg.SemiMonthly.SecondPayDay == 0 {
			cfg.SemiMonthly.SecondPayDay = 15
		}
	case calendar.Monthly:
		fmt.Println("  3. Pay day of the month (1-31, 31 = last day)")
		if v, ok := readInt(reader); ok {
			cfg.Monthly.PayDay = v
		} else if cfg.Monthly.PayDay == 0 {
			cfg.Monthly.PayDay = 1
		}
	}
	// Month-based schedules record their first boundary too, so period
	// transitions fire from day one.
	switch cfg.PaycheckFrequency {
	case calendar.SemiMonthly, calendar.Monthly:
		cfg.NextPayDate = model.DateOf(schedule.NextPayDateOnOrAfter(cfg, today))
	}
	fmt.Println()

	// 4. Paycheck amount
	fmt.Println("  4. Paycheck amount (per check)")
	if !fresh && cfg.PaycheckAmount > 0 {
		fmt.Printf("     Current: %s\n", cli.FormatMoney(cfg.PaycheckAmount))
	}
	if v, ok := readFloat(reader); ok {
		cfg.PaycheckAmount = model.Round2(v)
	}
	fmt.Println()

	// 5. Baseline spend
	fmt.Println("  5. Typical discretionary spend per pay period")
	fmt.Println("     Groceries, gas, eating out; bills come later.")
	if !fresh && cfg.BaselineSpendPerPeriod > 0 {
		fmt.Printf("     Current: %s\n", cli.FormatMoney(cfg.BaselineSpendPerPeriod))
	}
	if v, ok := readFloat(reader); ok {
		cfg.BaselineSpendPerPeriod = model.Round2(v)
	}
	fmt.Println()

	// 6. Savings goal
	fmt.Println("  6. Savings goal (0 for none)")
	if !fresh && cfg.SavingsGoal > 0 {
		fmt.Printf("     Current: %s\n", cli.FormatMoney(cfg.SavingsGoal))
	}
	if v, ok := readFloat(reader); ok {
		cfg.SavingsGoal = model.Round2(v)
	}
	fmt.Println()

	// 7. Weekend handling
	fmt.Println("  7. When a pay date lands on a weekend")
	fmt.Println("     (1) paid the Friday before [default]")
	fmt.Println("     (2) paid the Monday after")
	fmt.Println("     (3) paid on the day regardless")
	switch readLine(reader) {
	case "2":
		cfg.WeekendHandling = calendar.WeekendAfter
	case "3":
		cfg.WeekendHandling = calendar.WeekendNone
	default:
		cfg.WeekendHandling = calendar.WeekendBefore
	}

	if err := fs.Save(cfg); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", budgetPath())
	fmt.Println("  Add bills with `glidepath expense add`, then run `glidepath` for the summary.")
	fmt.Println()
	return nil
}

func readLine(reader *bufio.Reader) string {
	fmt.Print("     > ")
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readFloat(reader *bufio.Reader) (float64, bool) {
	line := readLine(reader)
	if line == "" {
		return 0, false
	}
	line = strings.TrimPrefix(line, "$")
	line = strings.ReplaceAll(line, ",", "")
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readInt(reader *bufio.Reader) (int, bool) {
	line := readLine(reader)
	if line == "" {
		return 0, false
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return v, true
}
