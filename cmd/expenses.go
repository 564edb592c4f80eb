package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagExpenseName      string
	flagExpenseAmount    float64
	flagExpenseFrequency string
	flagExpenseDue       string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage recurring expenses",
	RunE:  runExpenseList,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring expenses",
	RunE:  runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring expense",
	RunE:  runExpenseAdd,
}

var expenseRemoveCmd = &cobra.Command{
	Use:   "remove <name-or-id>",
	Short: "Remove a recurring expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseRemove,
}

func init() {
	expenseAddCmd.Flags().StringVar(&flagExpenseName, "name", "", "Expense name")
	expenseAddCmd.Flags().Float64Var(&flagExpenseAmount, "amount", 0, "Amount per occurrence")
	expenseAddCmd.Flags().StringVar(&flagExpenseFrequency, "frequency", "monthly", "weekly, biweekly, monthly, quarterly, or yearly")
	expenseAddCmd.Flags().StringVar(&flagExpenseDue, "due", "", "Next due date (YYYY-MM-DD)")
	_ = expenseAddCmd.MarkFlagRequired("name")
	_ = expenseAddCmd.MarkFlagRequired("amount")
	_ = expenseAddCmd.MarkFlagRequired("due")

	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseRemoveCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseList(_ *cobra.Command, _ []string) error {
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

	if len(cfg.RecurringExpenses) == 0 {
		fmt.Println("  No recurring expenses. Add one with `glidepath expense add`.")
		return nil
	}

	t := cli.Table{
		Title:   "Recurring Expenses",
		Headers: []string{"Name", "Amount", "Frequency", "Next Due"},
	}
	total := 0.0
	for _, e := range cfg.RecurringExpenses {
		t.Rows = append(t.Rows, []string{
			e.Name,
			cli.FormatMoney(e.Amount),
			string(e.Frequency),
			cli.FormatISODate(e.NextDueDate.Time),
		})
		total += monthlyEquivalent(e)
	}
	t.Rows = append(t.Rows, []string{"---"})
	t.Rows = append(t.Rows, []string{"~monthly total", cli.FormatMoney(model.Round2(total)), "", ""})

	fmt.Println()
	fmt.Println(cli.RenderTable(t))
	return nil
}

// monthlyEquivalent normalizes an expense to a per-month figure for the
// list footer.
func monthlyEquivalent(e model.RecurringExpense) float64 {
	switch e.Frequency {
	case calendar.Weekly:
		return e.Amount * 52 / 12
	case calendar.Biweekly:
		return e.Amount * 26 / 12
	case calendar.Quarterly:
		return e.Amount / 3
	case calendar.Yearly:
		return e.Amount / 12
	default:
		return e.Amount
	}
}

func runExpenseAdd(_ *cobra.Command, _ []string) error {
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	due, err := calendar.ParseDate(flagExpenseDue)
	if err != nil {
		return fmt.Errorf("invalid --due date %q: %w", flagExpenseDue, err)
	}

	expense := model.RecurringExpense{
		ID:          model.NewID(),
		Name:        flagExpenseName,
		Amount:      flagExpenseAmount,
		Frequency:   calendar.Frequency(flagExpenseFrequency),
		NextDueDate: model.DateOf(due),
	}
	if err := expense.Validate(); err != nil {
		return err
	}

	cfg.RecurringExpenses = append(cfg.RecurringExpenses, expense)
	if err := fs.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Added %s: %s %s, next due %s\n",
		expense.Name, cli.FormatMoney(expense.Amount), expense.Frequency,
		cli.FormatISODate(due))
	return nil
}

func runExpenseRemove(_ *cobra.Command, args []string) error {
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	target := args[0]
	idx := -1
	for i, e := range cfg.RecurringExpenses {
		if e.ID == target || strings.EqualFold(e.Name, target) {
			if idx >= 0 {
				return fmt.Errorf("%q matches more than one expense; use the id", target)
			}
			idx = i
		}
	}
	if idx < 0 {
		return fmt.Errorf("no expense named %q", target)
	}

	removed := cfg.RecurringExpenses[idx]
	cfg.RecurringExpenses = append(cfg.RecurringExpenses[:idx], cfg.RecurringExpenses[idx+1:]...)
	if err := fs.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Removed %s (%s %s)\n", removed.Name, cli.FormatMoney(removed.Amount), removed.Frequency)
	return nil
}
