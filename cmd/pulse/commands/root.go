package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	// Global flags
	configPath   string
	sessionToken string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Pulse - facility staff and label operations toolkit",
	Long: `Pulse manages a facility's day-to-day floor operations: the staff
directory and workstation training, manual task label batches with
sequential barcodes, and shipment tracking lookup.

State lives on a Redis-backed ops board shared by every Pulse surface,
and committed label batches are posted to the task sink (sinkd).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pulse.yml", "Path to the pulse.yml configuration file")
	rootCmd.PersistentFlags().StringVar(&sessionToken, "session", "", "Session token from 'pulse login' (defaults to $PULSE_SESSION)")
}
