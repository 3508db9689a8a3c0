package escrow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/models"
)

// ConfirmApplyFunc mutates a transaction's checklist (and possibly its status
// and timestamps) inside the repository's serializable scope. The partners
// slice holds the transaction's partner rows read fresh within the same scope.
type ConfirmApplyFunc func(tx *models.Transaction, partners []models.TransactionPartner) error

// DepositCancel carries the ledger writes of the deposit-deadline cancel path.
// The repository commits them in one atomic batch so "cancelled but partners
// not marked" can never persist.
type DepositCancel struct {
	TransactionID      uuid.UUID
	ListingID          uuid.UUID
	TimedOutPartnerIDs []uuid.UUID
	CancelledAt        time.Time
}

// TransactionRepo defines the ledger operations for transactions, partners,
// listings, and volume counters.
type TransactionRepo interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction, partners []models.TransactionPartner) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetPartners(ctx context.Context, transactionID uuid.UUID) ([]models.TransactionPartner, error)

	// ClaimStatus atomically moves the transaction to the target status iff
	// its current status is in the allowed set, returning whether this caller
	// won. A false result is a negative claim, not an error.
	ClaimStatus(ctx context.Context, id uuid.UUID, from []models.TransactionStatus, to models.TransactionStatus) (bool, error)

	// ConfirmItem runs apply inside a serializable transaction scope around
	// the whole read-modify-write and persists the mutated checklist, status,
	// and timestamps. When apply completes the transaction it also increments
	// the buyer/seller volume counters, exactly once, in the same scope.
	ConfirmItem(ctx context.Context, id uuid.UUID, apply ConfirmApplyFunc) (*models.Transaction, error)

	// The job scans also surface records stranded in the job's transient
	// claim status (a crash between claim and settle) once their last update
	// predates staleBefore, so no claim is lost forever.
	ListDepositDeadlineExpired(ctx context.Context, now, staleBefore time.Time, limit int) ([]models.Transaction, error)
	ListTransferDeadlineExpired(ctx context.Context, cutoff, staleBefore time.Time, limit int) ([]models.Transaction, error)
	ListUnsettledCompleted(ctx context.Context, cutoff, staleBefore time.Time, limit int) ([]models.Transaction, error)

	// MarkPartnerDeposited writes the deposit conditionally on the parent
	// transaction still awaiting deposits; false means nothing was written.
	MarkPartnerDeposited(ctx context.Context, partnerID uuid.UUID, signature string) (bool, error)
	MarkPartnerRefunded(ctx context.Context, partnerID uuid.UUID, signature string) error

	// FinalizeDepositCancel commits the cancel outcome of the deposit-deadline
	// job atomically: transaction to CANCELLED, timed-out partners flagged,
	// listing reservation released.
	FinalizeDepositCancel(ctx context.Context, batch DepositCancel) error

	// FinalizeTransferRefund commits the refund outcome of the transfer-deadline
	// job atomically: transaction to REFUNDED with the confirmed signature,
	// listing restored to active.
	FinalizeTransferRefund(ctx context.Context, id uuid.UUID, signature string, refundedAt time.Time) error

	SetOnChainTx(ctx context.Context, id uuid.UUID, signature string, releasedAt time.Time) error
	SetListingStatus(ctx context.Context, listingID uuid.UUID, status models.ListingStatus) error
}

// OfferRepo defines the ledger operations for offers. Terminal offers are kept
// forever for audit; there is no delete.
type OfferRepo interface {
	CreateOffer(ctx context.Context, offer *models.Offer) error
	GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error)

	// ClaimOfferStatus is the offer-side conditional-update claim
	ClaimOfferStatus(ctx context.Context, id uuid.UUID, from []models.OfferStatus, to models.OfferStatus) (bool, error)

	// ListExpired includes offers stranded in EXPIRING by a crash once their
	// last update predates staleBefore.
	ListExpired(ctx context.Context, now, staleBefore time.Time, limit int) ([]models.Offer, error)
	FinalizeExpired(ctx context.Context, id uuid.UUID, signature string, expiredAt time.Time) error

	// RecordExpiryFailure rolls the EXPIRING claim back to ACTIVE and counts
	// the failed settlement attempt so the next pass retries.
	RecordExpiryFailure(ctx context.Context, id uuid.UUID) error
}
