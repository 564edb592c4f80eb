package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/model"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [amount]",
	Short: "Show or set the current balance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(_ *cobra.Command, args []string) error {
	today, err := resolveToday()
	if err != nil {
		return err
	}
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("  Balance: %s", cli.FormatMoney(cfg.CurrentBalance))
		if !cfg.CurrentBalanceAsOf.IsZero() {
			fmt.Printf("  %s", cli.Muted("as of "+cli.FormatDate(cfg.CurrentBalanceAsOf.Time)))
		}
		fmt.Println()
		return nil
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", args[0], err)
	}

	cfg.CurrentBalance = model.Round2(amount)
	cfg.CurrentBalanceAsOf = model.DateOf(today)
	if cfg.BudgetStartDate.IsZero() {
		// First balance ever recorded starts the budget clock.
		cfg.BudgetStartDate = model.DateOf(today)
	}

	if err := fs.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Balance set to %s as of %s\n",
		cli.FormatMoney(cfg.CurrentBalance), cli.FormatDate(today))
	return nil
}
