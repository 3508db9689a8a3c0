package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the current status of a purchase transaction
type TransactionStatus string

const (
	TxStatusPending                TransactionStatus = "PENDING"
	TxStatusAwaitingPartnerDeposit TransactionStatus = "AWAITING_PARTNER_DEPOSITS"
	TxStatusFunded                 TransactionStatus = "FUNDED"
	TxStatusPaid                   TransactionStatus = "PAID"
	TxStatusInEscrow               TransactionStatus = "IN_ESCROW"
	TxStatusTransferPending        TransactionStatus = "TRANSFER_PENDING"
	TxStatusTransferInProgress     TransactionStatus = "TRANSFER_IN_PROGRESS"
	TxStatusAwaitingConfirmation   TransactionStatus = "AWAITING_CONFIRMATION"
	TxStatusDisputed               TransactionStatus = "DISPUTED"
	TxStatusPendingRelease         TransactionStatus = "PENDING_RELEASE"
	TxStatusCompleted              TransactionStatus = "COMPLETED"
	TxStatusRefunded               TransactionStatus = "REFUNDED"
	TxStatusCancelled              TransactionStatus = "CANCELLED"

	// Transient claim statuses. These never appear in the public transition
	// table; they are entered and exited only through the conditional-update
	// claim so that concurrent job runs cannot process the same record twice.
	TxStatusProcessingDeposits TransactionStatus = "PROCESSING_DEPOSITS"
	TxStatusProcessingTransfer TransactionStatus = "PROCESSING_TRANSFER"
)

// IsTerminal reports whether no further mutation of the transaction is permitted
func (s TransactionStatus) IsTerminal() bool {
	return s == TxStatusCompleted || s == TxStatusRefunded || s == TxStatusCancelled
}

// DepositStatus represents a purchase partner's deposit state
type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "PENDING"
	DepositStatusDeposited DepositStatus = "DEPOSITED"
	DepositStatusRefunded  DepositStatus = "REFUNDED"
)

// ListingStatus represents the marketplace listing state owned by this engine.
// The listing CRUD itself lives in the web application; the engine only
// reserves, releases, and finalizes listings as transactions move.
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "ACTIVE"
	ListingStatusReserved ListingStatus = "RESERVED"
	ListingStatusSold     ListingStatus = "SOLD"
)

// Transaction represents one purchase instance from reservation through
// settlement. OnChainTx is set only after the settlement network confirms a
// signature, never speculatively.
type Transaction struct {
	ID                     uuid.UUID         `json:"id" db:"id"`
	ListingID              uuid.UUID         `json:"listing_id" db:"listing_id"`
	BuyerID                uuid.UUID         `json:"buyer_id" db:"buyer_id"`
	SellerID               uuid.UUID         `json:"seller_id" db:"seller_id"`
	Status                 TransactionStatus `json:"status" db:"status"`
	SalePrice              int64             `json:"sale_price" db:"sale_price"`
	PlatformFee            int64             `json:"platform_fee" db:"platform_fee"`
	SellerProceeds         int64             `json:"seller_proceeds" db:"seller_proceeds"`
	Currency               string            `json:"currency" db:"currency"`
	PaymentMethod          string            `json:"payment_method" db:"payment_method"`
	OnChainTx              string            `json:"on_chain_tx,omitempty" db:"on_chain_tx"`
	SellerWallet           string            `json:"seller_wallet" db:"seller_wallet"`
	BuyerWallet            string            `json:"buyer_wallet" db:"buyer_wallet"`
	HasPartners            bool              `json:"has_partners" db:"has_partners"`
	PartnerDepositDeadline *time.Time        `json:"partner_deposit_deadline,omitempty" db:"partner_deposit_deadline"`
	TransferChecklist      Checklist         `json:"transfer_checklist" db:"transfer_checklist"`
	TransferStartedAt      *time.Time        `json:"transfer_started_at,omitempty" db:"transfer_started_at"`
	TransferCompletedAt    *time.Time        `json:"transfer_completed_at,omitempty" db:"transfer_completed_at"`
	ReleasedAt             *time.Time        `json:"released_at,omitempty" db:"released_at"`
	PaidAt                 *time.Time        `json:"paid_at,omitempty" db:"paid_at"`
	ExpiredAt              *time.Time        `json:"expired_at,omitempty" db:"expired_at"`
	CreatedAt              time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at" db:"updated_at"`
}

// TransactionPartner represents one co-purchaser in a group buy. UserID is nil
// for partners identified only by wallet address.
type TransactionPartner struct {
	ID                   uuid.UUID     `json:"id" db:"id"`
	TransactionID        uuid.UUID     `json:"transaction_id" db:"transaction_id"`
	WalletAddress        string        `json:"wallet_address" db:"wallet_address"`
	UserID               *uuid.UUID    `json:"user_id,omitempty" db:"user_id"`
	Percentage           float64       `json:"percentage" db:"percentage"`
	DepositStatus        DepositStatus `json:"deposit_status" db:"deposit_status"`
	DepositTx            string        `json:"deposit_tx,omitempty" db:"deposit_tx"`
	RefundTx             string        `json:"refund_tx,omitempty" db:"refund_tx"`
	HasConfirmedTransfer bool          `json:"has_confirmed_transfer" db:"has_confirmed_transfer"`
	ConfirmedAt          *time.Time    `json:"confirmed_at,omitempty" db:"confirmed_at"`
	NotifiedTimeout      bool          `json:"notified_timeout" db:"notified_timeout"`
}

// VoterID returns the identifier used as the partner's vote key on checklist items
func (p *TransactionPartner) VoterID() string {
	if p.UserID != nil {
		return p.UserID.String()
	}
	return p.WalletAddress
}

// PartnerVote records one voter's confirmation of a checklist item
type PartnerVote struct {
	Confirmed   bool      `json:"confirmed"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// MajorityVote is the snapshot of the group-purchase vote tally for one item
type MajorityVote struct {
	TotalVoters    int  `json:"total_voters"`
	ConfirmedCount int  `json:"confirmed_count"`
	MajorityNeeded int  `json:"majority_needed"`
	HasMajority    bool `json:"has_majority"`
}

// ChecklistItem represents one required asset-transfer step (e.g. "github",
// "domain"). An item is satisfied only when the seller confirmed it AND the
// buyer side confirmed it (directly for a single buyer, by majority vote for a
// group purchase).
type ChecklistItem struct {
	Key                  string                 `json:"key"`
	Label                string                 `json:"label,omitempty"`
	Required             bool                   `json:"required"`
	SellerConfirmed      bool                   `json:"seller_confirmed"`
	SellerConfirmedAt    *time.Time             `json:"seller_confirmed_at,omitempty"`
	SellerEvidence       string                 `json:"seller_evidence,omitempty"`
	SellerEvidenceHash   string                 `json:"seller_evidence_hash,omitempty"`
	BuyerConfirmed       bool                   `json:"buyer_confirmed"`
	BuyerConfirmedAt     *time.Time             `json:"buyer_confirmed_at,omitempty"`
	PartnerConfirmations map[string]PartnerVote `json:"partner_confirmations,omitempty"`
	MajorityVote         *MajorityVote          `json:"majority_vote,omitempty"`
}

// Satisfied reports whether this item counts as done
func (i *ChecklistItem) Satisfied() bool {
	return i.SellerConfirmed && i.BuyerConfirmed
}

// Checklist is the ordered transfer checklist embedded in a transaction,
// persisted as a JSONB column.
type Checklist []ChecklistItem

// Item returns a pointer to the item with the given key, or nil
func (c Checklist) Item(key string) *ChecklistItem {
	for idx := range c {
		if c[idx].Key == key {
			return &c[idx]
		}
	}
	return nil
}

// AllRequiredSatisfied reports whether every required item is satisfied
func (c Checklist) AllRequiredSatisfied() bool {
	for idx := range c {
		if c[idx].Required && !c[idx].Satisfied() {
			return false
		}
	}
	return true
}

// SellerConfirmedCount returns how many items the seller has confirmed
func (c Checklist) SellerConfirmedCount() int {
	n := 0
	for idx := range c {
		if c[idx].SellerConfirmed {
			n++
		}
	}
	return n
}

// Validate rejects structurally broken checklists at the read boundary. The
// payload arrives from a JSONB column that older writers treated as untyped,
// so every read revalidates rather than assuming shape.
func (c Checklist) Validate() error {
	seen := make(map[string]bool, len(c))
	for idx := range c {
		item := &c[idx]
		if item.Key == "" {
			return fmt.Errorf("checklist item %d has an empty key", idx)
		}
		if seen[item.Key] {
			return fmt.Errorf("duplicate checklist item key %q", item.Key)
		}
		seen[item.Key] = true
		if item.MajorityVote != nil {
			mv := item.MajorityVote
			if mv.TotalVoters < 0 || mv.ConfirmedCount < 0 || mv.ConfirmedCount > mv.TotalVoters {
				return fmt.Errorf("checklist item %q has an inconsistent vote snapshot", item.Key)
			}
		}
	}
	return nil
}

// Value implements driver.Valuer for JSONB persistence
func (c Checklist) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checklist: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB persistence
func (c *Checklist) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*c = Checklist{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported checklist column type %T", src)
	}
	var out Checklist
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal checklist: %w", err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("invalid checklist payload: %w", err)
	}
	*c = out
	return nil
}
