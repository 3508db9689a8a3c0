package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/internal/utils"
	"github.com/forgebay/escrow/services/escrow"
)

// transferAdvance is the canonical forward hop a checklist confirmation takes
// through the intermediate statuses. Each hop is a legal edge of the
// transition table, so a confirmation landing on an early status walks the
// record forward instead of jumping.
var transferAdvance = map[models.TransactionStatus]models.TransactionStatus{
	models.TxStatusFunded:          models.TxStatusInEscrow,
	models.TxStatusPaid:            models.TxStatusInEscrow,
	models.TxStatusInEscrow:        models.TxStatusTransferInProgress,
	models.TxStatusTransferPending: models.TxStatusTransferInProgress,
}

// ConfirmTransferItem records one actor's confirmation of a transfer checklist
// item. The whole read-modify-write runs inside the repository's serializable
// scope; when the confirmation satisfies every required item the transaction
// completes in the same scope, including the one-time volume counter credit.
// The on-chain release is dispatched only after that scope commits.
func (uc *EscrowUC) ConfirmTransferItem(ctx context.Context, req escrow.ConfirmItemRequest) (*models.Transaction, error) {
	var completedNow bool

	tx, err := uc.txRepo.ConfirmItem(ctx, req.TransactionID, func(tx *models.Transaction, partners []models.TransactionPartner) error {
		if !escrow.IsConfirmable(tx.Status) {
			return &escrow.InvalidStateError{Status: tx.Status, Action: "confirm a transfer item"}
		}

		item := tx.TransferChecklist.Item(req.ItemKey)
		if item == nil {
			return escrow.ErrChecklistItemNotFound
		}

		now := time.Now().UTC()
		switch req.Role {
		case escrow.RoleSeller:
			if req.ActorID != tx.SellerID {
				return escrow.ErrNotAuthorized
			}
			item.SellerConfirmed = true
			item.SellerConfirmedAt = &now
			if req.Evidence != "" {
				item.SellerEvidence = req.Evidence
				item.SellerEvidenceHash = utils.ContentHash(req.Evidence)
			}

		case escrow.RoleBuyer:
			if req.ActorID != tx.BuyerID {
				return escrow.ErrNotAuthorized
			}
			if tx.HasPartners {
				recordVote(item, tx.BuyerID.String(), now)
				tallyMajority(item, partners, now)
			} else {
				item.BuyerConfirmed = true
				item.BuyerConfirmedAt = &now
			}

		case escrow.RolePartner:
			if !tx.HasPartners {
				return escrow.ErrNotAuthorized
			}
			partner := findVotingPartner(partners, req.ActorID, req.ActorWallet)
			if partner == nil {
				return escrow.ErrNotAuthorized
			}
			recordVote(item, partner.VoterID(), now)
			tallyMajority(item, partners, now)

		default:
			return escrow.ErrNotAuthorized
		}

		if err := markTransferInProgress(tx, now); err != nil {
			return err
		}

		if tx.TransferChecklist.AllRequiredSatisfied() && tx.Status != models.TxStatusCompleted {
			if err := escrow.Transition(tx, models.TxStatusCompleted); err != nil {
				return err
			}
			tx.TransferCompletedAt = &now
			completedNow = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyItemConfirmed(ctx, tx, req)
	if completedNow {
		uc.notifyCompleted(ctx, tx)
		uc.settleRelease(ctx, tx)
	}
	return tx, nil
}

// markTransferInProgress walks the transaction forward to TRANSFER_IN_PROGRESS
// through the legal intermediate edges. It also stamps the start of the
// transfer on the first confirmation. Statuses at or past
// TRANSFER_IN_PROGRESS stay put.
func markTransferInProgress(tx *models.Transaction, now time.Time) error {
	for tx.Status != models.TxStatusTransferInProgress {
		next, ok := transferAdvance[tx.Status]
		if !ok {
			break
		}
		if err := escrow.Transition(tx, next); err != nil {
			return err
		}
	}
	if tx.TransferStartedAt == nil {
		tx.TransferStartedAt = &now
	}
	return nil
}

// findVotingPartner resolves the acting partner by user ID or wallet. Only a
// partner whose deposit is in counts as a voter.
func findVotingPartner(partners []models.TransactionPartner, actorID uuid.UUID, wallet string) *models.TransactionPartner {
	for idx := range partners {
		p := &partners[idx]
		matched := (p.UserID != nil && *p.UserID == actorID) ||
			(wallet != "" && p.WalletAddress == wallet)
		if matched && p.DepositStatus == models.DepositStatusDeposited {
			return p
		}
	}
	return nil
}

// recordVote writes one voter's confirmation into the item's vote map. Voting
// twice is idempotent; the first timestamp wins.
func recordVote(item *models.ChecklistItem, voterID string, now time.Time) {
	if item.PartnerConfirmations == nil {
		item.PartnerConfirmations = make(map[string]models.PartnerVote)
	}
	if existing, ok := item.PartnerConfirmations[voterID]; ok && existing.Confirmed {
		return
	}
	item.PartnerConfirmations[voterID] = models.PartnerVote{Confirmed: true, ConfirmedAt: now}
}

// tallyMajority recomputes the group-purchase vote snapshot for the item. The
// voter pool is every partner with a deposit in, plus the lead buyer. The
// buyer-side confirmation flips exactly when the confirmed votes reach a
// strict majority of that pool.
func tallyMajority(item *models.ChecklistItem, partners []models.TransactionPartner, now time.Time) {
	deposited := 0
	for idx := range partners {
		if partners[idx].DepositStatus == models.DepositStatusDeposited {
			deposited++
		}
	}
	totalVoters := deposited + 1

	confirmed := 0
	for _, vote := range item.PartnerConfirmations {
		if vote.Confirmed {
			confirmed++
		}
	}

	item.MajorityVote = &models.MajorityVote{
		TotalVoters:    totalVoters,
		ConfirmedCount: confirmed,
		MajorityNeeded: totalVoters/2 + 1,
		HasMajority:    confirmed >= totalVoters/2+1,
	}

	if item.MajorityVote.HasMajority && !item.BuyerConfirmed {
		item.BuyerConfirmed = true
		item.BuyerConfirmedAt = &now
	}
}

// settleRelease submits the escrow release for a completed transaction and
// records the confirmed signature. A failed or unconfirmed release leaves
// OnChainTx empty; the release-retry job picks the record up later.
func (uc *EscrowUC) settleRelease(ctx context.Context, tx *models.Transaction) {
	if uc.settlement == nil || !uc.settlement.Enabled() {
		return
	}

	sig, ok := uc.settlement.ReleaseEscrow(ctx, tx.ListingID, tx.BuyerID, tx.SellerWallet)
	if !ok {
		logger.Warn("Escrow release not confirmed, deferred to retry job",
			logger.String("transaction_id", tx.ID.String()))
		return
	}

	now := time.Now().UTC()
	if err := uc.txRepo.SetOnChainTx(ctx, tx.ID, sig, now); err != nil {
		logger.Error("Failed to record release signature",
			logger.String("transaction_id", tx.ID.String()),
			logger.String("signature", sig),
			logger.Err(err))
		return
	}
	tx.OnChainTx = sig
	tx.ReleasedAt = &now
}

func (uc *EscrowUC) notifyItemConfirmed(ctx context.Context, tx *models.Transaction, req escrow.ConfirmItemRequest) {
	// Tell the other side of the table; partners learn through the buyer-side
	// completion events rather than per-vote noise.
	target := tx.BuyerID
	if req.Role != escrow.RoleSeller {
		target = tx.SellerID
	}
	uc.notify(ctx, models.Notification{
		UserID:  target,
		Type:    models.NotificationItemConfirmed,
		Title:   "Transfer step confirmed",
		Message: fmt.Sprintf("Checklist item %q was confirmed by the %s", req.ItemKey, req.Role),
		Data: map[string]string{
			"transaction_id": tx.ID.String(),
			"item_key":       req.ItemKey,
			"role":           string(req.Role),
		},
	})
}

func (uc *EscrowUC) notifyCompleted(ctx context.Context, tx *models.Transaction) {
	data := map[string]string{"transaction_id": tx.ID.String()}
	uc.notify(ctx, models.Notification{
		UserID:  tx.SellerID,
		Type:    models.NotificationTransactionCompleted,
		Title:   "Sale completed",
		Message: "All transfer steps are confirmed; your proceeds are being released",
		Data:    data,
	})
	uc.notify(ctx, models.Notification{
		UserID:  tx.BuyerID,
		Type:    models.NotificationTransactionCompleted,
		Title:   "Purchase completed",
		Message: "All transfer steps are confirmed; the purchase is complete",
		Data:    data,
	})
}
