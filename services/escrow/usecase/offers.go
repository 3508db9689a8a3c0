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

// ProcessOfferExpiries is the reconciliation job for active offers whose
// deadline has passed. Each offer is claimed ACTIVE -> EXPIRING, its escrowed
// bid refunded on-chain, then finalized EXPIRED. A failed refund rolls the
// claim back and bumps the failure counter so the next run retries.
func (uc *EscrowUC) ProcessOfferExpiries(ctx context.Context) (*models.JobSummary, error) {
	summary := models.NewJobSummary("offer expiry reconciliation")

	release, ok := uc.acquireJobLock(ctx, constants.KeyLockOfferExpiry)
	if !ok {
		summary.Message = "skipped: another run holds the job lock"
		return summary, nil
	}
	defer release()

	now := time.Now().UTC()
	candidates, err := uc.offerRepo.ListExpired(ctx, now, uc.staleClaimBefore(now), uc.batchLimit())
	if err != nil {
		return nil, err
	}

	for idx := range candidates {
		offer := &candidates[idx]
		outcome, err := uc.expireOffer(ctx, offer)
		if err != nil {
			logger.Error("Offer expiry processing failed",
				logger.String("offer_id", offer.ID.String()),
				logger.Int("failure_count", offer.FailureCount),
				logger.Err(err))
			summary.RecordError(outcome, fmt.Errorf("offer %s: %w", offer.ID, err))
			continue
		}
		summary.Record(outcome)
	}

	summary.Message = fmt.Sprintf("processed %d expired offers", summary.Processed)
	return summary, nil
}

// offerClaimable includes EXPIRING so a claim abandoned by a crashed run can
// be re-taken once the scan reports it stale.
var offerClaimable = []models.OfferStatus{
	models.OfferStatusActive,
	models.OfferStatusExpiring,
}

func (uc *EscrowUC) expireOffer(ctx context.Context, offer *models.Offer) (string, error) {
	claimed, err := uc.offerRepo.ClaimOfferStatus(ctx, offer.ID, offerClaimable, models.OfferStatusExpiring)
	if err != nil {
		return models.OutcomeFailed, err
	}
	if !claimed {
		// Accepted, cancelled, or claimed by a concurrent run in the meantime.
		return models.OutcomeSkipped, nil
	}

	sig := ""
	if uc.settlement != nil && uc.settlement.Enabled() {
		var ok bool
		sig, ok = uc.settlement.ExpireOffer(ctx, offer.ID, offer.BuyerWallet)
		if !ok {
			if rbErr := uc.offerRepo.RecordExpiryFailure(ctx, offer.ID); rbErr != nil {
				logger.Error("Failed to roll back offer expiry claim",
					logger.String("offer_id", offer.ID.String()),
					logger.Err(rbErr))
			}
			return models.OutcomeRetry, escrow.ErrOnChainSubmissionFailed
		}
	}

	if err := uc.offerRepo.FinalizeExpired(ctx, offer.ID, sig, time.Now().UTC()); err != nil {
		if err == escrow.ErrClaimLost {
			return models.OutcomeSkipped, nil
		}
		return models.OutcomeFailed, err
	}

	uc.notify(ctx, models.Notification{
		UserID:  offer.BuyerID,
		Wallet:  offer.BuyerWallet,
		Type:    models.NotificationOfferExpired,
		Title:   "Offer expired",
		Message: "Your offer was not accepted before its deadline; the escrowed amount was returned",
		Data: map[string]string{
			"offer_id":   offer.ID.String(),
			"listing_id": offer.ListingID.String(),
		},
	})
	return models.OutcomeExpired, nil
}
