package escrow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/models"
)

// NotificationGW is the fire-and-forget notification sink. Implementations
// must never be called inside a transactional scope; the usecase dispatches
// only after commit, and a publish failure is logged, not propagated into the
// state transition.
type NotificationGW interface {
	PublishNotification(ctx context.Context, n models.Notification) error
}

// SettlementClient submits signed settlement instructions to the escrow
// program. Every method is a single best-effort attempt: it returns the
// confirmed signature and true, or "" and false on any failure, which callers
// must treat as "not yet settled, retry later" - never as proof that funds did
// not move.
type SettlementClient interface {
	Enabled() bool
	ReleaseEscrow(ctx context.Context, listingID, buyerID uuid.UUID, sellerWallet string) (string, bool)
	RefundEscrow(ctx context.Context, listingID, buyerID uuid.UUID, buyerWallet string) (string, bool)
	RefundPartnerDeposit(ctx context.Context, listingID, buyerID uuid.UUID, partnerWallet string, lamports int64) (string, bool)
	ExpireOffer(ctx context.Context, offerID uuid.UUID, buyerWallet string) (string, bool)
}

// JobLocker short-circuits an obviously duplicate concurrent run of the same
// job. Best effort only: record-level claims remain the correctness boundary,
// and a nil locker (single-instance development) is tolerated by the usecase.
type JobLocker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}
