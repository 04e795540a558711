package commands

import (
	"fmt"

	"github.com/hearthplan/household-calendar-api/internal/push"
	"github.com/spf13/cobra"
)

var vapidCmd = &cobra.Command{
	Use:   "generate-vapid-keys",
	Short: "Generate a VAPID key pair for browser push",
	Long: `Prints a fresh VAPID key pair. Put the values in VAPID_PUBLIC_KEY
and VAPID_PRIVATE_KEY; without them the delivery worker logs reminders
instead of pushing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, publicKey, err := push.GenerateVAPIDKeys()
		if err != nil {
			return fmt.Errorf("generate keys: %w", err)
		}

		fmt.Printf("VAPID_PUBLIC_KEY=%s\n", publicKey)
		fmt.Printf("VAPID_PRIVATE_KEY=%s\n", privateKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vapidCmd)
}
