package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/effortwise/gearbox/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gearbox version %s\n", version.Get())
	},
}
