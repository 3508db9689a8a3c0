package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/constants"
	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

// MarkPartnerDeposited records a verified partner deposit and, when it was the
// last one outstanding, promotes the transaction to FUNDED via the claim so a
// concurrent deadline run cannot cancel a fully funded purchase.
func (uc *EscrowUC) MarkPartnerDeposited(ctx context.Context, transactionID, partnerID uuid.UUID, signature string) (*models.Transaction, error) {
	tx, err := uc.txRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.TxStatusAwaitingPartnerDeposit {
		return nil, &escrow.InvalidStateError{Status: tx.Status, Action: "record a partner deposit"}
	}

	partners, err := uc.txRepo.GetPartners(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if findPartnerByID(partners, partnerID) == nil {
		return nil, escrow.ErrPartnerNotFound
	}

	deposited, err := uc.txRepo.MarkPartnerDeposited(ctx, partnerID, signature)
	if err != nil {
		return nil, err
	}

	// Re-read before deciding; another deposit may have landed concurrently.
	partners, err = uc.txRepo.GetPartners(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !deposited {
		// Nothing was written: either a replay of an already-recorded deposit,
		// or the deposit window closed underneath us (a deadline run holds the
		// claim, or the transaction left AWAITING_PARTNER_DEPOSITS).
		p := findPartnerByID(partners, partnerID)
		if p == nil || p.DepositStatus != models.DepositStatusDeposited {
			fresh, err := uc.txRepo.GetTransaction(ctx, transactionID)
			if err != nil {
				return nil, err
			}
			return nil, &escrow.InvalidStateError{Status: fresh.Status, Action: "record a partner deposit"}
		}
	}
	if allDeposited(partners) {
		claimed, err := uc.txRepo.ClaimStatus(ctx, transactionID,
			[]models.TransactionStatus{models.TxStatusAwaitingPartnerDeposit}, models.TxStatusFunded)
		if err != nil {
			return nil, err
		}
		if claimed {
			uc.notifyFunded(ctx, tx)
		}
	}

	return uc.txRepo.GetTransaction(ctx, transactionID)
}

// ProcessPartnerDepositDeadlines is the reconciliation job for group purchases
// whose partner deposit window has closed. Fully deposited transactions are
// promoted to FUNDED; the rest are refunded partner by partner and cancelled.
func (uc *EscrowUC) ProcessPartnerDepositDeadlines(ctx context.Context) (*models.JobSummary, error) {
	summary := models.NewJobSummary("partner deposit deadline reconciliation")

	release, ok := uc.acquireJobLock(ctx, constants.KeyLockPartnerDeposits)
	if !ok {
		summary.Message = "skipped: another run holds the job lock"
		return summary, nil
	}
	defer release()

	now := time.Now().UTC()
	candidates, err := uc.txRepo.ListDepositDeadlineExpired(ctx, now, uc.staleClaimBefore(now), uc.batchLimit())
	if err != nil {
		return nil, err
	}

	for idx := range candidates {
		tx := &candidates[idx]
		outcome, err := uc.processDepositDeadline(ctx, tx)
		if err != nil {
			logger.Error("Deposit deadline processing failed",
				logger.String("transaction_id", tx.ID.String()),
				logger.Err(err))
			summary.RecordError(outcome, fmt.Errorf("transaction %s: %w", tx.ID, err))
			continue
		}
		summary.Record(outcome)
	}

	summary.Message = fmt.Sprintf("processed %d expired partner-deposit transactions", summary.Processed)
	return summary, nil
}

// depositClaimable includes PROCESSING_DEPOSITS so a stale claim abandoned by
// a crashed run can be re-taken by a later pass.
var depositClaimable = []models.TransactionStatus{
	models.TxStatusAwaitingPartnerDeposit,
	models.TxStatusProcessingDeposits,
}

func (uc *EscrowUC) processDepositDeadline(ctx context.Context, tx *models.Transaction) (string, error) {
	claimed, err := uc.txRepo.ClaimStatus(ctx, tx.ID, depositClaimable, models.TxStatusProcessingDeposits)
	if err != nil {
		return models.OutcomeFailed, err
	}
	if !claimed {
		return models.OutcomeSkipped, nil
	}

	// Deposit statuses must be read fresh after the claim; a deposit may have
	// landed between the batch scan and winning the claim.
	partners, err := uc.txRepo.GetPartners(ctx, tx.ID)
	if err != nil {
		uc.rollbackClaim(ctx, tx.ID, models.TxStatusProcessingDeposits, models.TxStatusAwaitingPartnerDeposit)
		return models.OutcomeFailed, err
	}

	if allDeposited(partners) {
		claimed, err := uc.txRepo.ClaimStatus(ctx, tx.ID,
			[]models.TransactionStatus{models.TxStatusProcessingDeposits}, models.TxStatusFunded)
		if err != nil {
			return models.OutcomeFailed, err
		}
		if !claimed {
			return models.OutcomeSkipped, nil
		}
		uc.notifyFunded(ctx, tx)
		return models.OutcomeFunded, nil
	}

	return uc.cancelUnderfunded(ctx, tx, partners)
}

// cancelUnderfunded refunds every deposited partner and cancels the purchase.
// Each refund is marked on the partner row as soon as its signature confirms,
// so a crash mid-way never re-refunds anyone; the terminal cancel itself is
// one atomic batch.
func (uc *EscrowUC) cancelUnderfunded(ctx context.Context, tx *models.Transaction, partners []models.TransactionPartner) (string, error) {
	var timedOut []uuid.UUID

	for idx := range partners {
		p := &partners[idx]
		switch p.DepositStatus {
		case models.DepositStatusPending:
			timedOut = append(timedOut, p.ID)
			continue
		case models.DepositStatusRefunded:
			// Already refunded by an earlier, partially failed pass.
			continue
		}

		sig := ""
		if uc.settlement != nil && uc.settlement.Enabled() {
			var ok bool
			sig, ok = uc.settlement.RefundPartnerDeposit(ctx, tx.ListingID, tx.BuyerID,
				p.WalletAddress, partnerShareLamports(tx.SalePrice, p.Percentage))
			if !ok {
				uc.rollbackClaim(ctx, tx.ID, models.TxStatusProcessingDeposits, models.TxStatusAwaitingPartnerDeposit)
				return models.OutcomeRetry, fmt.Errorf("partner %s: %w", p.ID, escrow.ErrOnChainSubmissionFailed)
			}
		}

		if err := uc.txRepo.MarkPartnerRefunded(ctx, p.ID, sig); err != nil {
			uc.rollbackClaim(ctx, tx.ID, models.TxStatusProcessingDeposits, models.TxStatusAwaitingPartnerDeposit)
			return models.OutcomeFailed, err
		}
		p.DepositStatus = models.DepositStatusRefunded
		p.RefundTx = sig
		uc.notifyPartnerRefunded(ctx, tx, p)
	}

	err := uc.txRepo.FinalizeDepositCancel(ctx, escrow.DepositCancel{
		TransactionID:      tx.ID,
		ListingID:          tx.ListingID,
		TimedOutPartnerIDs: timedOut,
		CancelledAt:        time.Now().UTC(),
	})
	if err != nil {
		if err == escrow.ErrClaimLost {
			return models.OutcomeSkipped, nil
		}
		return models.OutcomeFailed, err
	}

	uc.notifyDepositCancelled(ctx, tx, partners, timedOut)
	return models.OutcomeCancelled, nil
}

// partnerShareLamports converts a partner's percentage share of the sale price
// into the lamport amount held by the deposit escrow.
func partnerShareLamports(salePrice int64, percentage float64) int64 {
	return int64(math.Round(float64(salePrice) * percentage / 100))
}

func findPartnerByID(partners []models.TransactionPartner, id uuid.UUID) *models.TransactionPartner {
	for idx := range partners {
		if partners[idx].ID == id {
			return &partners[idx]
		}
	}
	return nil
}

func allDeposited(partners []models.TransactionPartner) bool {
	if len(partners) == 0 {
		return false
	}
	for idx := range partners {
		if partners[idx].DepositStatus != models.DepositStatusDeposited {
			return false
		}
	}
	return true
}

func (uc *EscrowUC) notifyPartnerRefunded(ctx context.Context, tx *models.Transaction, p *models.TransactionPartner) {
	n := models.Notification{
		Wallet:  p.WalletAddress,
		Type:    models.NotificationDepositRefunded,
		Title:   "Deposit refunded",
		Message: "The group purchase was not fully funded in time; your deposit was returned",
		Data: map[string]string{
			"transaction_id": tx.ID.String(),
			"refund_tx":      p.RefundTx,
		},
	}
	if p.UserID != nil {
		n.UserID = *p.UserID
	}
	uc.notify(ctx, n)
}

func (uc *EscrowUC) notifyDepositCancelled(ctx context.Context, tx *models.Transaction, partners []models.TransactionPartner, timedOut []uuid.UUID) {
	uc.notify(ctx, models.Notification{
		UserID:  tx.BuyerID,
		Type:    models.NotificationTransactionCancelled,
		Title:   "Group purchase cancelled",
		Message: "Not every partner deposited before the deadline; the purchase was cancelled",
		Data:    map[string]string{"transaction_id": tx.ID.String()},
	})

	flagged := make(map[uuid.UUID]bool, len(timedOut))
	for _, id := range timedOut {
		flagged[id] = true
	}
	for idx := range partners {
		p := &partners[idx]
		if !flagged[p.ID] || p.UserID == nil {
			continue
		}
		uc.notify(ctx, models.Notification{
			UserID:  *p.UserID,
			Wallet:  p.WalletAddress,
			Type:    models.NotificationDepositTimeout,
			Title:   "Deposit window missed",
			Message: "The group purchase was cancelled because your deposit did not arrive in time",
			Data:    map[string]string{"transaction_id": tx.ID.String()},
		})
	}
}
