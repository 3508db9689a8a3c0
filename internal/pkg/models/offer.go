package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferStatus represents the status of a time-boxed off-listing bid
type OfferStatus string

const (
	OfferStatusActive    OfferStatus = "ACTIVE"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusCancelled OfferStatus = "CANCELLED"
	OfferStatusExpired   OfferStatus = "EXPIRED"

	// OfferStatusExpiring is the transient claim status held by the expiry
	// job while the on-chain offer refund is in flight.
	OfferStatusExpiring OfferStatus = "EXPIRING"
)

// IsTerminal reports whether the offer can no longer change. Terminal offers
// are retained indefinitely for audit; nothing hard-deletes them.
func (s OfferStatus) IsTerminal() bool {
	return s == OfferStatusAccepted || s == OfferStatusCancelled || s == OfferStatusExpired
}

// Offer represents a time-boxed bid on a listing, escrowed on-chain until it
// is accepted, cancelled, or expires.
type Offer struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	ListingID    uuid.UUID   `json:"listing_id" db:"listing_id"`
	BuyerID      uuid.UUID   `json:"buyer_id" db:"buyer_id"`
	BuyerWallet  string      `json:"buyer_wallet" db:"buyer_wallet"`
	Amount       int64       `json:"amount" db:"amount"`
	Currency     string      `json:"currency" db:"currency"`
	Deadline     time.Time   `json:"deadline" db:"deadline"`
	Status       OfferStatus `json:"status" db:"status"`
	OnChainTx    string      `json:"on_chain_tx,omitempty" db:"on_chain_tx"`
	FailureCount int         `json:"failure_count" db:"failure_count"`
	ExpiredAt    *time.Time  `json:"expired_at,omitempty" db:"expired_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}
