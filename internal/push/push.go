// Package push wraps Web Push delivery behind a small interface so
// the delivery worker can run with a stubbed sender in tests and fall
// back to logging when no VAPID keys are configured.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/hearthplan/household-calendar-api/internal/models"
)

// Message is the JSON object handed to the browser's service worker.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Sender delivers one message to one subscription endpoint.
type Sender interface {
	// Configured reports whether the sender holds usable credentials.
	Configured() bool

	// Send delivers msg to the subscription's endpoint.
	Send(ctx context.Context, sub *models.PushSubscription, msg Message) error
}

// WebPushSender sends VAPID-signed Web Push messages.
type WebPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
}

// NewWebPushSender creates a WebPushSender. Empty keys yield an
// unconfigured sender; callers are expected to check Configured.
func NewWebPushSender(publicKey, privateKey, subscriber string) *WebPushSender {
	return &WebPushSender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
	}
}

// Configured reports whether both VAPID keys are present.
func (s *WebPushSender) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// Send delivers msg to the subscription endpoint using its stored keys.
func (s *WebPushSender) Send(ctx context.Context, sub *models.PushSubscription, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.PublicKey,
			Auth:   sub.AuthToken,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint responded %d", resp.StatusCode)
	}

	return nil
}

// GenerateVAPIDKeys creates a fresh VAPID key pair for deployment
// configuration.
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}
