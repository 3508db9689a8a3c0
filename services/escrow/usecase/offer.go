package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

const defaultDepositWindow = 48 * time.Hour

// PlaceOffer records a new time-boxed bid. The bid amount is already escrowed
// on-chain by the buyer's wallet before this endpoint is called; the engine
// only tracks the ledger side.
func (uc *EscrowUC) PlaceOffer(ctx context.Context, req escrow.PlaceOfferRequest) (*models.Offer, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("offer amount must be positive")
	}
	now := time.Now().UTC()
	if !req.Deadline.After(now) {
		return nil, fmt.Errorf("offer deadline must be in the future")
	}

	offer := &models.Offer{
		ID:          uuid.New(),
		ListingID:   req.ListingID,
		BuyerID:     req.BuyerID,
		BuyerWallet: req.BuyerWallet,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Deadline:    req.Deadline,
		Status:      models.OfferStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if offer.Currency == "" {
		offer.Currency = "SOL"
	}

	if err := uc.offerRepo.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// AcceptOffer converts an active offer into a purchase transaction. The offer
// is claimed ACTIVE -> ACCEPTED first, so two concurrent accepts (or an accept
// racing the expiry job) resolve to exactly one winner.
func (uc *EscrowUC) AcceptOffer(ctx context.Context, req escrow.AcceptOfferRequest) (*models.Transaction, error) {
	offer, err := uc.offerRepo.GetOffer(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}

	claimed, err := uc.offerRepo.ClaimOfferStatus(ctx, offer.ID,
		[]models.OfferStatus{models.OfferStatusActive}, models.OfferStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, escrow.ErrClaimLost
	}

	now := time.Now().UTC()
	tx := &models.Transaction{
		ID:                uuid.New(),
		ListingID:         offer.ListingID,
		BuyerID:           offer.BuyerID,
		SellerID:          req.SellerID,
		Status:            models.TxStatusPending,
		SalePrice:         offer.Amount,
		PlatformFee:       req.PlatformFee,
		SellerProceeds:    offer.Amount - req.PlatformFee,
		Currency:          offer.Currency,
		PaymentMethod:     "crypto",
		SellerWallet:      req.SellerWallet,
		BuyerWallet:       offer.BuyerWallet,
		TransferChecklist: buildChecklist(req.Checklist),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var partners []models.TransactionPartner
	if len(req.Partners) > 0 {
		tx.HasPartners = true
		deadline := now.Add(defaultDepositWindow)
		if req.DepositDeadline != nil {
			deadline = req.DepositDeadline.UTC()
		}
		tx.PartnerDepositDeadline = &deadline
		if err := escrow.Transition(tx, models.TxStatusAwaitingPartnerDeposit); err != nil {
			return nil, err
		}

		for _, share := range req.Partners {
			partners = append(partners, models.TransactionPartner{
				ID:            uuid.New(),
				TransactionID: tx.ID,
				WalletAddress: share.WalletAddress,
				UserID:        share.UserID,
				Percentage:    share.Percentage,
				DepositStatus: models.DepositStatusPending,
			})
		}
	} else {
		// The offer amount is already escrowed on-chain, so a single-buyer
		// purchase is funded the moment it is accepted.
		if err := escrow.Transition(tx, models.TxStatusFunded); err != nil {
			return nil, err
		}
	}

	if err := uc.txRepo.CreateTransaction(ctx, tx, partners); err != nil {
		return nil, err
	}

	if tx.Status == models.TxStatusFunded {
		uc.notifyFunded(ctx, tx)
	}
	return tx, nil
}

func buildChecklist(keys []string) models.Checklist {
	list := make(models.Checklist, 0, len(keys))
	for _, key := range keys {
		list = append(list, models.ChecklistItem{Key: key, Required: true})
	}
	return list
}

func (uc *EscrowUC) notifyFunded(ctx context.Context, tx *models.Transaction) {
	data := map[string]string{"transaction_id": tx.ID.String()}
	uc.notify(ctx, models.Notification{
		UserID:  tx.SellerID,
		Type:    models.NotificationTransactionFunded,
		Title:   "Purchase fully funded",
		Message: "All funds are in escrow; you can start the asset transfer",
		Data:    data,
	})
	uc.notify(ctx, models.Notification{
		UserID:  tx.BuyerID,
		Type:    models.NotificationTransactionFunded,
		Title:   "Purchase fully funded",
		Message: "All deposits are in; the purchase moves to the transfer phase",
		Data:    data,
	})
}
