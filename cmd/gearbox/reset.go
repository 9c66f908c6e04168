package main

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear effort state for a fresh task",
	Long: `Clear the persisted controller state: role profiles, escalation
level, failure traces, and history. The event journal is kept as an
audit trail.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	_, db, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	// Drop the persisted snapshot entirely rather than overwriting it
	// with a fresh blob; the next Load starts from defaults.
	if err := db.Clear(); err != nil {
		return err
	}

	return printJSON(map[string]any{"success": true})
}
