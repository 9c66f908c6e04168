package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/effortwise/gearbox/internal/effort"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the effort and cost report for the current task",
	Long: `Summarize the current task: complexity bucket, escalation level,
failure count, cost estimate against the ceiling, and per-role final
states with their effective effort scores.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "Output format: json, yaml, or text")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctrl, _, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	report := ctrl.Report()

	switch reportFormat {
	case "json":
		return printJSON(report)
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Print(string(out))
		return nil
	case "text":
		printTextReport(report)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, or text)", reportFormat)
	}
}

// printTextReport renders a human-readable report.
func printTextReport(report *effort.EffortReport) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	bold.Printf("Task %s\n", report.TaskID)
	fmt.Printf("  complexity: %.2f (%s)\n", report.ComplexityScore, report.Bucket)

	levelColor := green
	switch {
	case report.EscalationLevel >= 6:
		levelColor = red
	case report.EscalationLevel >= 3:
		levelColor = yellow
	}
	levelColor.Printf("  escalation level: %d (%s)\n", report.EscalationLevel, effort.PhaseForLevel(report.EscalationLevel))
	fmt.Printf("  failures: %d, effort changes: %d\n", report.TotalFailures, report.EffortChanges)

	costColor := green
	if report.CostEstimate > report.MaxCost {
		costColor = red
	}
	costColor.Printf("  cost estimate: $%.4f / $%.2f\n", report.CostEstimate, report.MaxCost)

	bold.Println("Roles")
	for _, rs := range report.FinalStates {
		fmt.Printf("  L%d %-11s %-8s depth=%.2f temp=%.2f budget=%d effort=%.2f\n",
			rs.Level, rs.Role, rs.Tier, rs.Depth, rs.Temperature, rs.TokenBudget, rs.EffectiveEffort)
	}

	if len(report.FailureTraces) > 0 {
		bold.Println("Failures")
		for _, ft := range report.FailureTraces {
			fmt.Printf("  %s %s: %s\n", ft.Timestamp.Format("15:04:05"), ft.Role, ft.Reason)
		}
	}
}
