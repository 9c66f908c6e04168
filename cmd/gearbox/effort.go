package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/effortwise/gearbox/pkg/models"
)

var effortCmd = &cobra.Command{
	Use:   "effort [role]",
	Short: "Show current effort profiles",
	Long: `Print the current effort profile for one role, or for all seven
roles when no role is given. Pipeline drivers read this before invoking
a role to learn its tier, depth, and token budget.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEffort,
}

func runEffort(cmd *cobra.Command, args []string) error {
	ctrl, _, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 1 {
		role := models.Role(args[0])
		profile, ok := ctrl.NodeEffort(role)
		if !ok {
			return fmt.Errorf("no effort profile for role %q (run 'gearbox assess' first)", role)
		}
		return printJSON(map[string]any{
			"role":    role,
			"profile": profile,
		})
	}

	profiles := make(map[models.Role]models.EffortProfile)
	for _, role := range models.AllRoles {
		if profile, ok := ctrl.NodeEffort(role); ok {
			profiles[role] = profile
		}
	}
	return printJSON(profiles)
}
