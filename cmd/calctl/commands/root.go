package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "calctl",
	Short: "Household calendar maintenance commands",
	Long: `calctl runs the household calendar's batch operations outside the
HTTP server: dispatching due reminder notifications, applying database
migrations, and generating VAPID keys for browser push.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
