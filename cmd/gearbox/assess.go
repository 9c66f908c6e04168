package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var assessTaskID string

var assessCmd = &cobra.Command{
	Use:   "assess <score>",
	Short: "Seed all role profiles from a complexity score",
	Long: `Classify a task's complexity score (0..1) into a bucket and derive
effort profiles for all seven pipeline roles from the bucket's per-level
baselines. This fully replaces any previous task state: the escalation
level returns to 0 and failure traces are cleared.

Run once per task, before invoking any role.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVar(&assessTaskID, "task", "", "Task identifier (generated if omitted)")
}

func runAssess(cmd *cobra.Command, args []string) error {
	score, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", args[0], err)
	}

	ctrl, _, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := ctrl.AssessAndPropagateDown(score, assessTaskID)
	if err != nil {
		return err
	}

	return printJSON(result)
}
