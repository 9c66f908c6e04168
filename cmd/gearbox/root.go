package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/effortwise/gearbox/internal/config"
	"github.com/effortwise/gearbox/internal/effort"
	"github.com/effortwise/gearbox/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "gearbox",
	Short: "Compute-effort controller for hierarchical agent pipelines",
	Long: `Gearbox allocates and adapts compute effort (which model tier, how much
reasoning depth) across the seven fixed roles of a three-level task
pipeline, while keeping total spend under a hard ceiling.

A pipeline driver seeds all role profiles once per task from a
complexity score (assess), escalates effort when a role's output is
rejected (fail), and fine-tunes single roles from live signals (tune).
State lives in a project-local SQLite database (.gearbox/state.db).

Commands print JSON by default so they compose with pipeline hooks.`,
	SilenceUsage: true,
}

var verbose bool

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo controller events to stderr")
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(failCmd)
	rootCmd.AddCommand(tuneCmd)
	rootCmd.AddCommand(effortCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// openController loads config, opens the project store, and builds the
// controller with the store-backed event journal as its sink. With
// --verbose, events also fan out through a buffered emitter that echoes
// them to stderr. Callers must call the returned cleanup function; it
// drains the echo before closing the store.
func openController() (*effort.Controller, *state.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := state.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open state store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("migrate state store: %w", err)
	}

	logger, err := effort.NewDebugLogger(cfg.Log.Path)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	sink := effort.EventSink(state.JournalSink{Journal: db})
	cleanup := func() { db.Close() }
	if verbose {
		emitter := effort.NewEventEmitter(16)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for e := range emitter.Events() {
				fmt.Fprintf(os.Stderr, "event: %s role=%s %s\n", e.Type, e.Role, e.Message)
			}
		}()
		sink = effort.MultiSink{sink, emitter}
		cleanup = func() {
			emitter.Close()
			<-done
			db.Close()
		}
	}

	ctrl, err := effort.New(effort.Options{
		Store:  db,
		Sink:   sink,
		Logger: logger,
		Params: cfg.EffortParams(),
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return ctrl, db, cleanup, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
