package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

func activeOffer() *models.Offer {
	return &models.Offer{
		ID:          uuid.New(),
		ListingID:   uuid.New(),
		BuyerID:     uuid.New(),
		BuyerWallet: "BuyerWallet111",
		Amount:      2_000_000_000,
		Currency:    "SOL",
		Deadline:    time.Now().Add(24 * time.Hour),
		Status:      models.OfferStatusActive,
	}
}

func TestPlaceOffer(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	m.offerRepo.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(nil)

	offer, err := uc.PlaceOffer(context.Background(), escrow.PlaceOfferRequest{
		ListingID:   uuid.New(),
		BuyerID:     uuid.New(),
		BuyerWallet: "BuyerWallet111",
		Amount:      500,
		Deadline:    time.Now().Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusActive, offer.Status)
	assert.Equal(t, "SOL", offer.Currency)
	assert.NotEqual(t, uuid.Nil, offer.ID)
}

func TestPlaceOffer_PastDeadlineRejected(t *testing.T) {
	uc, _, ctrl := newTestUC(t)
	defer ctrl.Finish()

	_, err := uc.PlaceOffer(context.Background(), escrow.PlaceOfferRequest{
		ListingID: uuid.New(),
		BuyerID:   uuid.New(),
		Amount:    500,
		Deadline:  time.Now().Add(-time.Hour),
	})

	assert.Error(t, err)
}

func TestAcceptOffer_SingleBuyerIsFundedImmediately(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()
	m.offerRepo.EXPECT().GetOffer(gomock.Any(), offer.ID).Return(offer, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID,
			[]models.OfferStatus{models.OfferStatusActive}, models.OfferStatusAccepted).
		Return(true, nil)
	m.txRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil)

	tx, err := uc.AcceptOffer(context.Background(), escrow.AcceptOfferRequest{
		OfferID:      offer.ID,
		SellerID:     uuid.New(),
		SellerWallet: "SellerWallet111",
		PlatformFee:  100_000_000,
		Checklist:    []string{"github", "domain"},
	})

	require.NoError(t, err)
	assert.Equal(t, models.TxStatusFunded, tx.Status)
	assert.Equal(t, offer.Amount, tx.SalePrice)
	assert.Equal(t, offer.Amount-100_000_000, tx.SellerProceeds)
	assert.False(t, tx.HasPartners)
	require.Len(t, tx.TransferChecklist, 2)
	assert.True(t, tx.TransferChecklist[0].Required)
}

func TestAcceptOffer_GroupBuyAwaitsDeposits(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()
	m.offerRepo.EXPECT().GetOffer(gomock.Any(), offer.ID).Return(offer, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, gomock.Any(), models.OfferStatusAccepted).
		Return(true, nil)
	m.txRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any(), gomock.Len(2)).
		Return(nil)

	tx, err := uc.AcceptOffer(context.Background(), escrow.AcceptOfferRequest{
		OfferID:      offer.ID,
		SellerID:     uuid.New(),
		SellerWallet: "SellerWallet111",
		Checklist:    []string{"github"},
		Partners: []escrow.PartnerShare{
			{WalletAddress: "PartnerWallet1", Percentage: 30},
			{WalletAddress: "PartnerWallet2", Percentage: 20},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.TxStatusAwaitingPartnerDeposit, tx.Status)
	assert.True(t, tx.HasPartners)
	require.NotNil(t, tx.PartnerDepositDeadline)
	assert.WithinDuration(t, time.Now().Add(defaultDepositWindow), *tx.PartnerDepositDeadline, time.Minute)
}

func TestAcceptOffer_ConcurrentAcceptLosesClaim(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()
	m.offerRepo.EXPECT().GetOffer(gomock.Any(), offer.ID).Return(offer, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, gomock.Any(), models.OfferStatusAccepted).
		Return(false, nil)

	_, err := uc.AcceptOffer(context.Background(), escrow.AcceptOfferRequest{
		OfferID:      offer.ID,
		SellerID:     uuid.New(),
		SellerWallet: "SellerWallet111",
		Checklist:    []string{"github"},
	})

	assert.ErrorIs(t, err, escrow.ErrClaimLost)
}

func TestProcessOfferExpiries_RefundsAndExpires(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()
	offer.Deadline = time.Now().Add(-time.Hour)

	m.offerRepo.EXPECT().
		ListExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Offer{*offer}, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, offerClaimable, models.OfferStatusExpiring).
		Return(true, nil)
	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		ExpireOffer(gomock.Any(), offer.ID, offer.BuyerWallet).
		Return("ExpireSig111", true)
	m.offerRepo.EXPECT().
		FinalizeExpired(gomock.Any(), offer.ID, "ExpireSig111", gomock.Any()).
		Return(nil)

	summary, err := uc.ProcessOfferExpiries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeExpired])
	assert.Empty(t, summary.Results.Errors)
}

func TestProcessOfferExpiries_SettlementDisabledStillExpires(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()

	m.offerRepo.EXPECT().
		ListExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Offer{*offer}, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, gomock.Any(), models.OfferStatusExpiring).
		Return(true, nil)
	m.settlement.EXPECT().Enabled().Return(false)
	m.offerRepo.EXPECT().
		FinalizeExpired(gomock.Any(), offer.ID, "", gomock.Any()).
		Return(nil)

	summary, err := uc.ProcessOfferExpiries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeExpired])
}

func TestProcessOfferExpiries_RefundFailureRetriesLater(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()

	m.offerRepo.EXPECT().
		ListExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Offer{*offer}, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, gomock.Any(), models.OfferStatusExpiring).
		Return(true, nil)
	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		ExpireOffer(gomock.Any(), offer.ID, offer.BuyerWallet).
		Return("", false)
	m.offerRepo.EXPECT().RecordExpiryFailure(gomock.Any(), offer.ID).Return(nil)

	summary, err := uc.ProcessOfferExpiries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeRetry])
	require.Len(t, summary.Results.Errors, 1)
}

func TestProcessOfferExpiries_StaleClaimReprocessed(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	// A crashed run abandoned the offer in EXPIRING; the scan reports it once
	// stale and the claim is re-taken from there.
	offer := activeOffer()
	offer.Status = models.OfferStatusExpiring

	m.offerRepo.EXPECT().
		ListExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Offer{*offer}, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, offerClaimable, models.OfferStatusExpiring).
		Return(true, nil)
	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		ExpireOffer(gomock.Any(), offer.ID, offer.BuyerWallet).
		Return("ExpireSig222", true)
	m.offerRepo.EXPECT().
		FinalizeExpired(gomock.Any(), offer.ID, "ExpireSig222", gomock.Any()).
		Return(nil)

	summary, err := uc.ProcessOfferExpiries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeExpired])
	assert.Empty(t, summary.Results.Errors)
}

func TestProcessOfferExpiries_AcceptedInFlightSkips(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	offer := activeOffer()

	m.offerRepo.EXPECT().
		ListExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Offer{*offer}, nil)
	m.offerRepo.EXPECT().
		ClaimOfferStatus(gomock.Any(), offer.ID, gomock.Any(), models.OfferStatusExpiring).
		Return(false, nil)

	summary, err := uc.ProcessOfferExpiries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeSkipped])
}
