package escrow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/models"
)

// ActorRole identifies who is confirming a checklist item
type ActorRole string

const (
	RoleBuyer   ActorRole = "buyer"
	RoleSeller  ActorRole = "seller"
	RolePartner ActorRole = "partner"
)

// ConfirmItemRequest is the confirm-transfer-item operation input
type ConfirmItemRequest struct {
	TransactionID uuid.UUID `json:"-"`
	ItemKey       string    `json:"-"`
	ActorID       uuid.UUID `json:"actor_id"`
	ActorWallet   string    `json:"actor_wallet,omitempty"`
	Role          ActorRole `json:"role"`
	Evidence      string    `json:"evidence,omitempty"`
}

// PlaceOfferRequest creates a time-boxed bid on a listing
type PlaceOfferRequest struct {
	ListingID   uuid.UUID `json:"listing_id"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	BuyerWallet string    `json:"buyer_wallet"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Deadline    time.Time `json:"deadline"`
}

// PartnerShare describes one co-purchaser of a group buy at acceptance time
type PartnerShare struct {
	WalletAddress string     `json:"wallet_address"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	Percentage    float64    `json:"percentage"`
}

// AcceptOfferRequest turns an active offer into a purchase transaction
type AcceptOfferRequest struct {
	OfferID         uuid.UUID      `json:"-"`
	SellerID        uuid.UUID      `json:"seller_id"`
	SellerWallet    string         `json:"seller_wallet"`
	PlatformFee     int64          `json:"platform_fee"`
	Checklist       []string       `json:"checklist"`
	Partners        []PartnerShare `json:"partners,omitempty"`
	DepositDeadline *time.Time     `json:"deposit_deadline,omitempty"`
}

// EscrowUC defines the escrow engine's use cases: the user-driven state
// machine operations and the periodic reconciliation jobs.
type EscrowUC interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ConfirmTransferItem(ctx context.Context, req ConfirmItemRequest) (*models.Transaction, error)

	PlaceOffer(ctx context.Context, req PlaceOfferRequest) (*models.Offer, error)
	AcceptOffer(ctx context.Context, req AcceptOfferRequest) (*models.Transaction, error)
	MarkPartnerDeposited(ctx context.Context, transactionID, partnerID uuid.UUID, signature string) (*models.Transaction, error)

	ProcessPartnerDepositDeadlines(ctx context.Context) (*models.JobSummary, error)
	ProcessOfferExpiries(ctx context.Context) (*models.JobSummary, error)
	ProcessTransferDeadlines(ctx context.Context) (*models.JobSummary, error)
	ProcessReleaseRetries(ctx context.Context) (*models.JobSummary, error)
}
