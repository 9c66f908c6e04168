package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/effortwise/gearbox/internal/effort"
	"github.com/effortwise/gearbox/pkg/models"
)

var tuneCmd = &cobra.Command{
	Use:   "tune <role> <signal>",
	Short: "Adjust one role's effort from a live signal",
	Long: `Adjust a single role's profile from a qualitative mid-execution
signal, independent of the escalation level.

Signals:
  struggling       more effort: tier up first, depth once tier is maxed
  confident        one notch down
  novel_territory  maximum breadth for unfamiliar work
  pattern_match    minimum cost for recognized, low-novelty work

Unknown roles or signals come back as {"success": false}; the caller
decides whether that is fatal.`,
	Args: cobra.ExactArgs(2),
	RunE: runTune,
}

func runTune(cmd *cobra.Command, args []string) error {
	role := models.Role(args[0])
	signal := effort.Signal(args[1])

	ctrl, _, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := ctrl.MidExecutionTune(role, signal)
	if err != nil {
		return err
	}

	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("tune rejected: %s", result.Error)
	}
	return nil
}
