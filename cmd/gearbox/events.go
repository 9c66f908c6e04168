package main

import (
	"github.com/spf13/cobra"
)

var (
	eventsTaskID string
	eventsLimit  int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List journaled controller events",
	Long: `List the controller's telemetry journal, newest first. Events record
every top-down seed, escalation step, mid-execution tune, and circuit
break, and survive process exit.`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsTaskID, "task", "", "Filter to one task")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "Maximum events to show (0 for all)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	_, db, cleanup, err := openController()
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := db.ListEvents(eventsTaskID, eventsLimit)
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"count":  len(records),
		"events": records,
	})
}
