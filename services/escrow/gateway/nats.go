package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forgebay/escrow/internal/pkg/constants"
	"github.com/forgebay/escrow/internal/pkg/models"
	natspkg "github.com/forgebay/escrow/internal/pkg/nats"
)

// NotificationGW publishes escrow notifications to the notification sink over
// NATS. Delivery is fire and forget: the caller logs a failed publish and
// moves on, it never affects a state transition.
type NotificationGW struct {
	nats *natspkg.Client
}

// NewNotificationGW creates the NATS-backed notification gateway
func NewNotificationGW(client *natspkg.Client) *NotificationGW {
	return &NotificationGW{nats: client}
}

// PublishNotification serializes the notification and publishes it to the
// sink subject, mirroring it onto the matching lifecycle event subject so
// other services can react without parsing sink payloads.
func (g *NotificationGW) PublishNotification(_ context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := g.nats.Publish(constants.SubjectNotificationCreate, payload); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	if subject := eventSubject(n.Type); subject != "" {
		// Best effort; the sink publish above is the one that matters.
		_ = g.nats.Publish(subject, payload)
	}
	return nil
}

func eventSubject(notificationType string) string {
	switch notificationType {
	case models.NotificationTransactionFunded:
		return constants.SubjectTransactionFunded
	case models.NotificationTransactionCancelled:
		return constants.SubjectTransactionCancelled
	case models.NotificationTransactionCompleted:
		return constants.SubjectTransactionCompleted
	case models.NotificationTransactionDisputed:
		return constants.SubjectTransactionDisputed
	case models.NotificationOfferExpired:
		return constants.SubjectOfferExpired
	default:
		return ""
	}
}
