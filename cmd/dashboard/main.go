package main

import (
	"activitydash/internal/di"
	"activitydash/internal/structures"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flags structures.CliFlags

// rootCmd serves the dashboard until SIGINT or SIGTERM.
var rootCmd = &cobra.Command{
	Use:           "dashboard",
	Short:         "Server-rendered dashboard for the LinkedIn activity monitor",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(&flags)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/dashboard.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "Mirror logs to stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dashboard:", err)
		os.Exit(1)
	}
}
