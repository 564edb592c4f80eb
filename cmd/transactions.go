package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxnName   string
	flagTxnAmount float64
	flagTxnPeriod int
	flagTxnIncome bool
)

var txnCmd = &cobra.Command{
	Use:   "txn",
	Short: "Manage one-off transactions tagged to projection periods",
	RunE:  runTxnList,
}

var txnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ad-hoc transactions",
	RunE:  runTxnList,
}

var txnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an ad-hoc transaction",
	RunE:  runTxnAdd,
}

var txnRemoveCmd = &cobra.Command{
	Use:   "remove <name-or-id>",
	Short: "Remove an ad-hoc transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxnRemove,
}

func init() {
	txnAddCmd.Flags().StringVar(&flagTxnName, "name", "", "Transaction name")
	txnAddCmd.Flags().Float64Var(&flagTxnAmount, "amount", 0, "Amount (non-negative)")
	txnAddCmd.Flags().IntVar(&flagTxnPeriod, "period", 1, "Projection period number (0 = before next paycheck)")
	txnAddCmd.Flags().BoolVar(&flagTxnIncome, "income", false, "Treat as income instead of an expense")
	_ = txnAddCmd.MarkFlagRequired("name")
	_ = txnAddCmd.MarkFlagRequired("amount")

	txnCmd.AddCommand(txnListCmd)
	txnCmd.AddCommand(txnAddCmd)
	txnCmd.AddCommand(txnRemoveCmd)
	rootCmd.AddCommand(txnCmd)
}

func runTxnList(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadBudget()
	if err != nil {
		return err
	}

	if len(cfg.AdHocTransactions) == 0 {
		fmt.Println("  No ad-hoc transactions. Add one with `glidepath txn add`.")
		return nil
	}

	t := cli.Table{
		Title:   "Ad-hoc Transactions",
		Headers: []string{"Period", "Name", "Amount"},
	}
	for _, txn := range cfg.AdHocTransactions {
		amount := cli.BadStyle.Render("-" + cli.FormatMoney(txn.Amount))
		if txn.IsIncome {
			amount = cli.GoodStyle.Render("+" + cli.FormatMoney(txn.Amount))
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", txn.PeriodNumber),
			txn.Name,
			amount,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(t))
	return nil
}

func runTxnAdd(_ *cobra.Command, _ []string) error {
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	txn := model.AdHocTransaction{
		ID:           model.NewID(),
		PeriodNumber: flagTxnPeriod,
		Name:         flagTxnName,
		Amount:       flagTxnAmount,
		IsIncome:     flagTxnIncome,
	}
	if err := txn.Validate(); err != nil {
		return err
	}

	cfg.AdHocTransactions = append(cfg.AdHocTransactions, txn)
	if err := fs.Save(cfg); err != nil {
		return err
	}

	direction := "expense"
	if txn.IsIncome {
		direction = "income"
	}
	fmt.Printf("  Added %s of %s (%s) in period %d\n",
		txn.Name, cli.FormatMoney(txn.Amount), direction, txn.PeriodNumber)
	return nil
}

func runTxnRemove(_ *cobra.Command, args []string) error {
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	target := args[0]
	idx := -1
	for i, txn := range cfg.AdHocTransactions {
		if txn.ID == target || strings.EqualFold(txn.Name, target) {
			if idx >= 0 {
				return fmt.Errorf("%q matches more than one transaction; use the id", target)
			}
			idx = i
		}
	}
	if idx < 0 {
		return fmt.Errorf("no transaction named %q", target)
	}

	removed := cfg.AdHocTransactions[idx]
	cfg.AdHocTransactions = append(cfg.AdHocTransactions[:idx], cfg.AdHocTransactions[idx+1:]...)
	if err := fs.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Removed %s (%s)\n", removed.Name, cli.FormatMoney(removed.Amount))
	return nil
}
