package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/effortwise/gearbox/pkg/models"
)

var failCmd = &cobra.Command{
	Use:   "fail <role> <reason...>",
	Short: "Escalate effort after a role's output was rejected",
	Long: `Record a role failure and advance the escalation ladder one rung.

Levels 1-2 raise model tiers, levels 3-5 raise reasoning depth, level 6
breaks the circuit and asks for a human. A task already past the cost
ceiling short-circuits straight to circuit_break from any level.

The result names the pipeline level execution should restart from.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFail,
}

func runFail(cmd *cobra.Command, args []string) error {
	role := models.Role(args[0])
	reason := strings.Join(args[1:], " ")

	ctrl, _, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := ctrl.HandleFailure(role, reason)
	if err != nil {
		return err
	}

	return printJSON(result)
}
