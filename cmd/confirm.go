package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/config"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/reconcile"
	"github.com/theirongolddev/glidepath/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagConfirmActual  float64
	flagConfirmExplain []string
	flagConfirmDismiss bool
)

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm the real ending balance of the pending period",
	Long: `Confirm records the actual ending balance for the period awaiting
confirmation. The gap between projected and actual becomes the variance;
explain slices of it with --explain reason:amount[:description], where
reason is adhoc_expense, planned_cost_higher, or baseline_miss. Anything
unexplained counts as a baseline miss and feeds the rolling baseline.`,
	RunE: runConfirm,
}

func init() {
	confirmCmd.Flags().Float64Var(&flagConfirmActual, "actual", 0, "Actual ending balance")
	confirmCmd.Flags().StringArrayVar(&flagConfirmExplain, "explain", nil, "Variance explanation reason:amount[:description] (repeatable)")
	confirmCmd.Flags().BoolVar(&flagConfirmDismiss, "dismiss", false, "Complete the pending period with projected figures instead")
	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(cmd *cobra.Command, _ []string) error {
	today, err := resolveToday()
	if err != nil {
		return err
	}
	cfg, fs, err := loadBudget()
	if err != nil {
		return err
	}

	if flagConfirmDismiss {
		if !reconcile.DismissPending(cfg, today) {
			fmt.Println("  No period is pending confirmation.")
			return nil
		}
		if err := fs.Save(cfg); err != nil {
			return err
		}
		fmt.Println("  Pending period completed with projected figures.")
		return nil
	}

	if !cmd.Flags().Changed("actual") {
		return printPending(cfg)
	}

	explanations, err := parseExplanations(flagConfirmExplain)
	if err != nil {
		return err
	}

	p, err := reconcile.ConfirmPeriod(cfg, flagConfirmActual, explanations, time.Now())
	if err != nil {
		return err
	}
	if err := fs.Save(cfg); err != nil {
		return err
	}
	archivePeriods(cfg)

	fmt.Printf("  Confirmed period %d: actual ending %s, variance %s\n",
		p.PeriodNumber, cli.FormatMoney(p.EndingBalance), cli.FormatSignedMoney(-p.Variance))
	fmt.Printf("  True spend this period: %s\n", cli.FormatMoney(p.TrueSpend))

	if avg := reconcile.AverageBaseline(cfg.Periods, cfg.PeriodsForBaselineCalc); avg != nil {
		note := fmt.Sprintf("  Rolling baseline: %s/period", cli.FormatMoney(*avg))
		if reconcile.CalculatedBaseline(cfg) == nil {
			note += cli.Muted(fmt.Sprintf(" (needs %d confirmed periods to take effect)", cfg.PeriodsForBaselineCalc))
		}
		fmt.Println(note)
	}
	return nil
}

// printPending shows the pending period so the user knows what to confirm.
func printPending(cfg *model.BudgetConfig) error {
	p := cfg.PendingPeriod()
	if p == nil {
		fmt.Println("  No period is pending confirmation.")
		return nil
	}

	fmt.Printf("  Period %d (%s to %s) is pending confirmation.\n",
		p.PeriodNumber, p.StartDate, p.EndDate)
	fmt.Printf("  Projected ending balance: %s\n", cli.FormatMoney(p.ProjectedEndingBalance))
	fmt.Println("  " + cli.Muted("Confirm with `glidepath confirm --actual <balance>`."))
	return nil
}

// parseExplanations parses repeated reason:amount[:description] flags.
func parseExplanations(raw []string) ([]model.VarianceExplanation, error) {
	var out []model.VarianceExplanation
	for _, s := range raw {
		parts := strings.SplitN(s, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid --explain %q, want reason:amount[:description]", s)
		}

		reason := model.VarianceReason(parts[0])
		switch reason {
		case model.ReasonAdHocExpense, model.ReasonPlannedCostHigher, model.ReasonBaselineMiss:
		default:
			return nil, fmt.Errorf("unknown variance reason %q", parts[0])
		}

		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in --explain %q: %w", s, err)
		}

		ex := model.VarianceExplanation{Reason: reason, Amount: amount}
		if len(parts) == 3 {
			ex.Description = parts[2]
		}
		out = append(out, ex)
	}
	return out, nil
}

// archivePeriods mirrors the document's periods into the history archive.
// Best effort: the JSON document stays the source of truth.
func archivePeriods(cfg *model.BudgetConfig) {
	archive, err := store.OpenArchive(config.ArchivePath())
	if err != nil {
		if !flagQuiet {
			fmt.Printf("  Warning: archive unavailable: %v\n", err)
		}
		return
	}
	defer func() { _ = archive.Close() }()
	if err := archive.SyncPeriods(cfg.Periods); err != nil && !flagQuiet {
		fmt.Printf("  Warning: archiving periods: %v\n", err)
	}
}
