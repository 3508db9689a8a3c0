package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/forgebay/escrow/internal/pkg/constants"
	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

// ProcessReleaseRetries is the reconciliation job for completed transactions
// whose escrow release never confirmed (a crash or RPC outage between the
// completing confirmation and the settlement call). Each candidate is claimed
// COMPLETED -> PENDING_RELEASE, released on-chain, and folded back to
// COMPLETED with the confirmed signature.
func (uc *EscrowUC) ProcessReleaseRetries(ctx context.Context) (*models.JobSummary, error) {
	summary := models.NewJobSummary("escrow release retry reconciliation")

	if uc.settlement == nil || !uc.settlement.Enabled() {
		summary.Message = "skipped: settlement is not configured"
		return summary, nil
	}

	release, ok := uc.acquireJobLock(ctx, constants.KeyLockReleaseRetry)
	if !ok {
		summary.Message = "skipped: another run holds the job lock"
		return summary, nil
	}
	defer release()

	retryAfter := uc.cfg.Jobs.ReleaseRetryMinutes
	if retryAfter <= 0 {
		retryAfter = 10
	}
	now := time.Now().UTC()
	cutoff := now.Add(-time.Duration(retryAfter) * time.Minute)

	candidates, err := uc.txRepo.ListUnsettledCompleted(ctx, cutoff, uc.staleClaimBefore(now), uc.batchLimit())
	if err != nil {
		return nil, err
	}

	for idx := range candidates {
		tx := &candidates[idx]
		outcome, err := uc.retryRelease(ctx, tx)
		if err != nil {
			logger.Error("Escrow release retry failed",
				logger.String("transaction_id", tx.ID.String()),
				logger.Err(err))
			summary.RecordError(outcome, fmt.Errorf("transaction %s: %w", tx.ID, err))
			continue
		}
		summary.Record(outcome)
	}

	summary.Message = fmt.Sprintf("processed %d unsettled completed transactions", summary.Processed)
	return summary, nil
}

// releaseClaimable includes PENDING_RELEASE so a claim abandoned by a crashed
// run can be re-taken once the scan reports it stale.
var releaseClaimable = []models.TransactionStatus{
	models.TxStatusCompleted,
	models.TxStatusPendingRelease,
}

func (uc *EscrowUC) retryRelease(ctx context.Context, tx *models.Transaction) (string, error) {
	claimed, err := uc.txRepo.ClaimStatus(ctx, tx.ID, releaseClaimable, models.TxStatusPendingRelease)
	if err != nil {
		return models.OutcomeFailed, err
	}
	if !claimed {
		return models.OutcomeSkipped, nil
	}

	sig, ok := uc.settlement.ReleaseEscrow(ctx, tx.ListingID, tx.BuyerID, tx.SellerWallet)
	if !ok {
		uc.rollbackClaim(ctx, tx.ID, models.TxStatusPendingRelease, models.TxStatusCompleted)
		return models.OutcomeRetry, escrow.ErrOnChainSubmissionFailed
	}

	// SetOnChainTx folds PENDING_RELEASE back to COMPLETED with the signature.
	if err := uc.txRepo.SetOnChainTx(ctx, tx.ID, sig, time.Now().UTC()); err != nil {
		return models.OutcomeFailed, err
	}

	uc.notify(ctx, models.Notification{
		UserID:  tx.SellerID,
		Type:    models.NotificationTransactionCompleted,
		Title:   "Proceeds released",
		Message: "Your escrowed proceeds were released to your wallet",
		Data: map[string]string{
			"transaction_id": tx.ID.String(),
			"signature":      sig,
		},
	})
	return models.OutcomeReleased, nil
}
