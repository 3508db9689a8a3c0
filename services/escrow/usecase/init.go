package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

// EscrowUC implements the escrow.EscrowUC interface
type EscrowUC struct {
	cfg        *models.Config
	txRepo     escrow.TransactionRepo
	offerRepo  escrow.OfferRepo
	settlement escrow.SettlementClient
	notifier   escrow.NotificationGW
	locker     escrow.JobLocker
}

// NewEscrowUC creates a new escrow use case. The locker may be nil for a
// single-instance development setup; that disables the duplicate-run short
// circuit but not correctness, which rests on the record-level claims.
func NewEscrowUC(
	cfg *models.Config,
	txRepo escrow.TransactionRepo,
	offerRepo escrow.OfferRepo,
	settlement escrow.SettlementClient,
	notifier escrow.NotificationGW,
	locker escrow.JobLocker,
) *EscrowUC {
	return &EscrowUC{
		cfg:        cfg,
		txRepo:     txRepo,
		offerRepo:  offerRepo,
		settlement: settlement,
		notifier:   notifier,
		locker:     locker,
	}
}

// GetTransaction retrieves a transaction by ID
func (uc *EscrowUC) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return uc.txRepo.GetTransaction(ctx, id)
}

func (uc *EscrowUC) batchLimit() int {
	if uc.cfg.Jobs.BatchLimit > 0 {
		return uc.cfg.Jobs.BatchLimit
	}
	return 100
}

// staleClaimBefore is the cutoff under which a transient claim status counts
// as abandoned: a crash after the claim leaves the record there, and the job
// scans reclaim it once this window has passed.
func (uc *EscrowUC) staleClaimBefore(now time.Time) time.Time {
	minutes := uc.cfg.Jobs.StaleClaimMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return now.Add(-time.Duration(minutes) * time.Minute)
}

// acquireJobLock takes the best-effort duplicate-run lock for a job. The
// returned release function is a no-op when no locker is configured.
func (uc *EscrowUC) acquireJobLock(ctx context.Context, name string) (func(), bool) {
	if uc.locker == nil {
		return func() {}, true
	}

	ttl := time.Duration(uc.cfg.Jobs.LockTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	ok, err := uc.locker.Acquire(ctx, name, ttl)
	if err != nil {
		// The lock is an optimization; a broken lock store must not stop
		// reconciliation. Claims still prevent double processing.
		logger.Warn("Job lock unavailable, proceeding without it",
			logger.String("job", name),
			logger.Err(err))
		return func() {}, true
	}
	if !ok {
		return func() {}, false
	}

	return func() {
		if err := uc.locker.Release(context.Background(), name); err != nil {
			logger.Warn("Failed to release job lock",
				logger.String("job", name),
				logger.Err(err))
		}
	}, true
}

// notify publishes a notification after the owning scope has committed.
// Publish failures are logged and dropped; the sink never affects a state
// transition.
func (uc *EscrowUC) notify(ctx context.Context, n models.Notification) {
	if uc.notifier == nil {
		return
	}
	n.CreatedAt = time.Now().UTC()
	if err := uc.notifier.PublishNotification(ctx, n); err != nil {
		logger.Warn("Failed to publish notification",
			logger.String("type", n.Type),
			logger.Err(err))
	}
}

// rollbackClaim returns a transiently-claimed transaction to its prior public
// status so a future pass can retry it. A rollback that itself fails leaves
// the record in the transient status; the claim's conditional form keeps that
// recoverable by hand and visible in logs.
func (uc *EscrowUC) rollbackClaim(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus) {
	if _, err := uc.txRepo.ClaimStatus(ctx, id, []models.TransactionStatus{from}, to); err != nil {
		logger.Error("Failed to roll back transaction claim",
			logger.String("transaction_id", id.String()),
			logger.String("from", string(from)),
			logger.String("to", string(to)),
			logger.Err(err))
	}
}
