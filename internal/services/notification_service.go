package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hearthplan/household-calendar-api/internal/constants"
	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/push"
	"github.com/hearthplan/household-calendar-api/internal/queue"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService runs the dispatcher scan and the delivery
// worker. Dispatch never touches notification status; Deliver marks
// sent unconditionally, so a crash between the two leaves the row
// pending for the next run — at-least-once, never exactly-once.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	subscriptionRepo repository.PushSubscriptionRepository
	pusher           push.Sender
	enqueuer         queue.Enqueuer
}

// NewNotificationService creates a NotificationService that delivers
// inline. UseQueue switches dispatch to a broker.
func NewNotificationService(notificationRepo repository.NotificationRepository, subscriptionRepo repository.PushSubscriptionRepository, pusher push.Sender) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		subscriptionRepo: subscriptionRepo,
		pusher:           pusher,
	}
}

// UseQueue routes dispatched tasks through the given enqueuer instead
// of delivering inline.
func (s *NotificationService) UseQueue(enqueuer queue.Enqueuer) {
	s.enqueuer = enqueuer
}

// Dispatch selects due pending notifications, oldest first, capped at
// the batch size, and hands each one to the delivery path. It returns
// the number of rows picked up; enqueue or delivery errors are logged
// and do not stop the batch.
func (s *NotificationService) Dispatch(ctx context.Context) (int, error) {
	due, err := s.notificationRepo.DuePending(time.Now(), constants.DispatchBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to select due notifications: %w", err)
	}

	for _, notification := range due {
		if s.enqueuer != nil {
			if err := s.enqueuer.EnqueueDelivery(ctx, notification.ID); err != nil {
				log.Printf("dispatch: failed to enqueue notification %d: %v", notification.ID, err)
			}
			continue
		}

		if err := s.Deliver(ctx, notification.ID); err != nil {
			log.Printf("dispatch: inline delivery of notification %d failed: %v", notification.ID, err)
		}
	}

	return len(due), nil
}

// Deliver is the delivery worker for one notification. With VAPID keys
// configured and at least one subscription registered, it pushes the
// reminder to every subscription; otherwise it logs the reminder. Per
// endpoint failures are warnings. The notification is marked sent in
// every case.
func (s *NotificationService) Deliver(ctx context.Context, notificationID uint64) error {
	notification, err := s.notificationRepo.FindByID(notificationID, "User", "Event")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to load notification: %w", err)
	}

	payload, err := notification.DecodePayload()
	if err != nil {
		log.Printf("deliver: notification %d has an unreadable payload: %v", notification.ID, err)
	}

	subscriptions, err := s.subscriptionRepo.ListByUserID(notification.UserID)
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	if s.pusher != nil && s.pusher.Configured() && len(subscriptions) > 0 {
		message := push.Message{
			Title: payload.Title,
			Body:  payload.StartAt.Format(time.RFC3339),
			URL:   constants.CalendarURL,
		}

		for i := range subscriptions {
			sub := &subscriptions[i]
			if err := s.pusher.Send(ctx, sub, message); err != nil {
				log.Printf("deliver: push to %s failed: %v", sub.Endpoint, err)
			}
		}
	} else {
		// Designed fallback, not an error: no keys or no subscriptions.
		log.Printf("event reminder: notification=%d user=%d event=%v payload=%s",
			notification.ID, notification.UserID, eventIDString(notification), string(notification.Payload))
	}

	if err := s.notificationRepo.MarkSent(notification.ID); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	return nil
}

func eventIDString(n *models.EventNotification) string {
	if n.EventID == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *n.EventID)
}
