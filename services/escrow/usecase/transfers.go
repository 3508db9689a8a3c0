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

// transferClaimable are the statuses a stalled transfer can be claimed from.
// PROCESSING_TRANSFER is included so a claim abandoned by a crashed run can
// be re-taken once the scan reports it stale.
var transferClaimable = []models.TransactionStatus{
	models.TxStatusTransferPending,
	models.TxStatusTransferInProgress,
	models.TxStatusInEscrow,
	models.TxStatusProcessingTransfer,
}

// ProcessTransferDeadlines is the reconciliation job for funded purchases whose
// asset transfer has stalled past the grace window. A seller who never
// confirmed a single checklist item forfeits: the buyer is refunded from
// escrow. A seller with at least one confirmed item gets a human: the
// transaction moves to DISPUTED for manual resolution.
func (uc *EscrowUC) ProcessTransferDeadlines(ctx context.Context) (*models.JobSummary, error) {
	summary := models.NewJobSummary("transfer deadline reconciliation")

	release, ok := uc.acquireJobLock(ctx, constants.KeyLockTransferDeadline)
	if !ok {
		summary.Message = "skipped: another run holds the job lock"
		return summary, nil
	}
	defer release()

	graceDays := uc.cfg.Jobs.TransferGraceDays
	if graceDays <= 0 {
		graceDays = 7
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -graceDays)

	candidates, err := uc.txRepo.ListTransferDeadlineExpired(ctx, cutoff,
		uc.staleClaimBefore(time.Now().UTC()), uc.batchLimit())
	if err != nil {
		return nil, err
	}

	for idx := range candidates {
		tx := &candidates[idx]
		outcome, err := uc.processTransferDeadline(ctx, tx)
		if err != nil {
			logger.Error("Transfer deadline processing failed",
				logger.String("transaction_id", tx.ID.String()),
				logger.Err(err))
			summary.RecordError(outcome, fmt.Errorf("transaction %s: %w", tx.ID, err))
			continue
		}
		summary.Record(outcome)
	}

	summary.Message = fmt.Sprintf("processed %d stalled transfers", summary.Processed)
	return summary, nil
}

func (uc *EscrowUC) processTransferDeadline(ctx context.Context, tx *models.Transaction) (string, error) {
	// tx.Status is the status seen by the batch scan; it is the rollback
	// target if settlement fails. Once the claim is held no confirmation can
	// land (PROCESSING_TRANSFER is not confirmable), so the checklist read
	// below is stable. A stale reclaim rolls back to PROCESSING_TRANSFER
	// itself; the scan picks it up again when the claim goes stale.
	priorStatus := tx.Status

	claimed, err := uc.txRepo.ClaimStatus(ctx, tx.ID, transferClaimable, models.TxStatusProcessingTransfer)
	if err != nil {
		return models.OutcomeFailed, err
	}
	if !claimed {
		return models.OutcomeSkipped, nil
	}

	fresh, err := uc.txRepo.GetTransaction(ctx, tx.ID)
	if err != nil {
		uc.rollbackClaim(ctx, tx.ID, models.TxStatusProcessingTransfer, priorStatus)
		return models.OutcomeFailed, err
	}

	if fresh.TransferChecklist.SellerConfirmedCount() > 0 {
		claimed, err := uc.txRepo.ClaimStatus(ctx, tx.ID,
			[]models.TransactionStatus{models.TxStatusProcessingTransfer}, models.TxStatusDisputed)
		if err != nil {
			return models.OutcomeFailed, err
		}
		if !claimed {
			return models.OutcomeSkipped, nil
		}
		uc.notifyDisputed(ctx, fresh)
		return models.OutcomeDisputed, nil
	}

	sig := ""
	if uc.settlement != nil && uc.settlement.Enabled() {
		var ok bool
		sig, ok = uc.settlement.RefundEscrow(ctx, fresh.ListingID, fresh.BuyerID, fresh.BuyerWallet)
		if !ok {
			uc.rollbackClaim(ctx, tx.ID, models.TxStatusProcessingTransfer, priorStatus)
			return models.OutcomeRetry, escrow.ErrOnChainSubmissionFailed
		}
	}

	if err := uc.txRepo.FinalizeTransferRefund(ctx, tx.ID, sig, time.Now().UTC()); err != nil {
		if err == escrow.ErrClaimLost {
			return models.OutcomeSkipped, nil
		}
		return models.OutcomeFailed, err
	}

	uc.notifyTransferRefunded(ctx, fresh)
	return models.OutcomeRefunded, nil
}

func (uc *EscrowUC) notifyDisputed(ctx context.Context, tx *models.Transaction) {
	data := map[string]string{"transaction_id": tx.ID.String()}
	uc.notify(ctx, models.Notification{
		UserID:  tx.SellerID,
		Type:    models.NotificationTransactionDisputed,
		Title:   "Transfer under review",
		Message: "The transfer stalled past its deadline with steps partially confirmed; support will review it",
		Data:    data,
	})
	uc.notify(ctx, models.Notification{
		UserID:  tx.BuyerID,
		Type:    models.NotificationTransactionDisputed,
		Title:   "Transfer under review",
		Message: "The transfer stalled past its deadline; support will review it",
		Data:    data,
	})
}

func (uc *EscrowUC) notifyTransferRefunded(ctx context.Context, tx *models.Transaction) {
	data := map[string]string{
		"transaction_id": tx.ID.String(),
		"listing_id":     tx.ListingID.String(),
	}
	uc.notify(ctx, models.Notification{
		UserID:  tx.BuyerID,
		Type:    models.NotificationTransactionRefunded,
		Title:   "Purchase refunded",
		Message: "The seller did not start the transfer in time; your escrowed funds were returned",
		Data:    data,
	})
	uc.notify(ctx, models.Notification{
		UserID:  tx.SellerID,
		Type:    models.NotificationTransactionRefunded,
		Title:   "Sale cancelled",
		Message: "The transfer deadline passed without any confirmed step; the buyer was refunded and the listing relisted",
		Data:    data,
	})
}
