package services

import (
	"errors"
	"fmt"

	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/repository"
)

var ErrSubscriptionInvalid = errors.New("subscription endpoint and keys are required")

// PushSubscriptionService maintains browser push registrations keyed
// by endpoint.
type PushSubscriptionService struct {
	subscriptionRepo repository.PushSubscriptionRepository
}

// NewPushSubscriptionService creates a new PushSubscriptionService
func NewPushSubscriptionService(subscriptionRepo repository.PushSubscriptionRepository) *PushSubscriptionService {
	return &PushSubscriptionService{
		subscriptionRepo: subscriptionRepo,
	}
}

// RegisterInput carries a browser push registration.
type RegisterInput struct {
	Endpoint  string
	PublicKey string
	AuthToken string
	UserAgent string
}

// Register upserts the subscription by endpoint. Re-registering an
// endpoint owned by another user transfers ownership; last writer
// wins.
func (s *PushSubscriptionService) Register(input RegisterInput, actorID uint64) error {
	if input.Endpoint == "" || input.PublicKey == "" || input.AuthToken == "" {
		return ErrSubscriptionInvalid
	}

	sub := &models.PushSubscription{
		UserID:    actorID,
		Endpoint:  input.Endpoint,
		PublicKey: input.PublicKey,
		AuthToken: input.AuthToken,
		UserAgent: input.UserAgent,
	}

	if err := s.subscriptionRepo.Upsert(sub); err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

// Unregister deletes the actor's subscription for the endpoint. A
// missing row is a no-op, not an error.
func (s *PushSubscriptionService) Unregister(endpoint string, actorID uint64) error {
	if endpoint == "" {
		return ErrSubscriptionInvalid
	}

	if err := s.subscriptionRepo.DeleteByUserEndpoint(actorID, endpoint); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
