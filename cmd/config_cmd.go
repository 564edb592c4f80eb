package cmd

import (
	"fmt"

	"github.com/theirongolddev/glidepath/internal/cli"
	"github.com/theirongolddev/glidepath/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings and the budget schedule",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print file locations",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := appConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Budget file:     %s\n", budgetPath())
	fmt.Printf("    Projection rows: %d\n", app.General.ProjectionRows)
	fmt.Println()

	fmt.Println("  [Reconcile]")
	fmt.Printf("    Confirmation grace: %d days\n", app.Reconcile.ConfirmationGraceDays)
	fmt.Println()

	cfg, _, err := loadBudget()
	if err != nil {
		fmt.Printf("  %v\n", err)
		return nil
	}

	fmt.Println("  [Schedule]")
	fmt.Printf("    Frequency:        %s\n", cfg.PaycheckFrequency)
	switch {
	case !cfg.NextPayDate.IsZero():
		fmt.Printf("    Next pay date:    %s\n", cli.FormatDate(cfg.NextPayDate.Time))
	case cfg.SemiMonthly.FirstPayDay > 0:
		fmt.Printf("    Pay days:         %d and %d\n", cfg.SemiMonthly.FirstPayDay, cfg.SemiMonthly.SecondPayDay)
	case cfg.Monthly.PayDay > 0:
		fmt.Printf("    Pay day:          %d\n", cfg.Monthly.PayDay)
	}
	fmt.Printf("    Paycheck:         %s\n", cli.FormatMoney(cfg.PaycheckAmount))
	fmt.Printf("    Weekend handling: %s\n", cfg.WeekendHandling)
	fmt.Println()

	fmt.Println("  [Baseline]")
	fmt.Printf("    Manual estimate:  %s/period\n", cli.FormatMoney(cfg.BaselineSpendPerPeriod))
	fmt.Printf("    Calculated:       %v (after %d confirmed periods)\n",
		cfg.UseCalculatedBaseline, cfg.PeriodsForBaselineCalc)
	fmt.Println()

	fmt.Println("  Run `glidepath setup` to reconfigure the budget.")
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config:  %s\n", config.ConfigPath())
	fmt.Printf("  Budget:  %s\n", budgetPath())
	fmt.Printf("  Archive: %s\n", config.ArchivePath())
	return nil
}
