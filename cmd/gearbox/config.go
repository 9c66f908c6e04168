package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/effortwise/gearbox/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Display the effective gearbox configuration.

Configuration is stored at ~/.config/gearbox/config.yaml
Project-specific overrides can be placed in .gearbox.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("budget.max_cost_per_task: %.2f\n", cfg.Budget.MaxCostPerTask)
		fmt.Printf("budget.base_cost.local: %.4f\n", cfg.Budget.BaseCost.Local)
		fmt.Printf("budget.base_cost.mid: %.4f\n", cfg.Budget.BaseCost.Mid)
		fmt.Printf("budget.base_cost.premium: %.4f\n", cfg.Budget.BaseCost.Premium)
		fmt.Printf("store.path: %s\n", cfg.Store.Path)
		fmt.Printf("log.path: %s\n", cfg.Log.Path)

		fmt.Println()
		fmt.Printf("user config: %s\n", config.GetUserConfigPath())
		if project := config.GetProjectConfigPath(); project != "" {
			fmt.Printf("project config: %s\n", project)
		}
	},
}
