package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the escrow engine
const (
	NotificationTransactionFunded    = "transaction.funded"
	NotificationTransactionCancelled = "transaction.cancelled"
	NotificationTransactionCompleted = "transaction.completed"
	NotificationTransactionRefunded  = "transaction.refunded"
	NotificationTransactionDisputed  = "transaction.disputed"
	NotificationDepositRefunded      = "deposit.refunded"
	NotificationDepositTimeout       = "deposit.timeout"
	NotificationOfferExpired         = "offer.expired"
	NotificationItemConfirmed        = "checklist.item_confirmed"
)

// Notification is a fire-and-forget message to the notification sink. It is
// published only after the owning transaction scope has committed; the sink
// never participates in a state transition's transactional boundary.
type Notification struct {
	UserID    uuid.UUID         `json:"user_id"`
	Wallet    string            `json:"wallet,omitempty"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
