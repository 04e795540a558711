package commands

import (
	"context"
	"fmt"

	"github.com/hearthplan/household-calendar-api/internal/config"
	"github.com/hearthplan/household-calendar-api/internal/database"
	"github.com/hearthplan/household-calendar-api/internal/push"
	"github.com/hearthplan/household-calendar-api/internal/queue"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/hearthplan/household-calendar-api/internal/services"
	"github.com/spf13/cobra"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch-notifications",
	Short: "Dispatch pending event reminders that are due",
	Long: `Selects pending notifications whose send time has passed, oldest
first, and hands each one to the delivery worker. With AMQP_URL set the
tasks go to the broker; otherwise delivery runs inline and falls back
to logging when no VAPID keys or subscriptions exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if err := database.Connect(cfg); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		db := database.GetDB()
		notificationRepo := repository.NewNotificationRepository(db)
		subscriptionRepo := repository.NewPushSubscriptionRepository(db)
		sender := push.NewWebPushSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber)

		service := services.NewNotificationService(notificationRepo, subscriptionRepo, sender)
		if cfg.AMQPURL != "" {
			service.UseQueue(queue.NewAMQPEnqueuer(cfg.AMQPURL))
		}

		count, err := service.Dispatch(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d reminders\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}
