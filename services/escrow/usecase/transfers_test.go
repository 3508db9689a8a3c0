package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebay/escrow/internal/pkg/models"
)

func stalledTransaction(sellerConfirmed int) *models.Transaction {
	tx := singleBuyerTransaction()
	tx.Status = models.TxStatusTransferPending
	for idx := 0; idx < sellerConfirmed && idx < len(tx.TransferChecklist); idx++ {
		tx.TransferChecklist[idx].SellerConfirmed = true
	}
	return tx
}

func TestProcessTransferDeadlines_NoSellerProgressRefundsBuyer(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := stalledTransaction(0)

	m.txRepo.EXPECT().
		ListTransferDeadlineExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Transaction{*tx}, nil)
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID, transferClaimable, models.TxStatusProcessingTransfer).
		Return(true, nil)
	m.txRepo.EXPECT().GetTransaction(gomock.Any(), tx.ID).Return(tx, nil)

	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		RefundEscrow(gomock.Any(), tx.ListingID, tx.BuyerID, tx.BuyerWallet).
		Return("RefundSig111", true)
	m.txRepo.EXPECT().
		FinalizeTransferRefund(gomock.Any(), tx.ID, "RefundSig111", gomock.Any()).
		Return(nil)

	summary, err := uc.ProcessTransferDeadlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeRefunded])
	assert.Empty(t, summary.Results.Errors)
}

func TestProcessTransferDeadlines_PartialSellerProgressDisputes(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := stalledTransaction(1)

	m.txRepo.EXPECT().
		ListTransferDeadlineExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Transaction{*tx}, nil)
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID, transferClaimable, models.TxStatusProcessingTransfer).
		Return(true, nil)
	m.txRepo.EXPECT().GetTransaction(gomock.Any(), tx.ID).Return(tx, nil)
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID,
			[]models.TransactionStatus{models.TxStatusProcessingTransfer}, models.TxStatusDisputed).
		Return(true, nil)

	summary, err := uc.ProcessTransferDeadlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeDisputed])
	assert.Empty(t, summary.Results.Errors)
}

func TestProcessTransferDeadlines_RefundFailureRollsBack(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := stalledTransaction(0)

	m.txRepo.EXPECT().
		ListTransferDeadlineExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Transaction{*tx}, nil)
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID, transferClaimable, models.TxStatusProcessingTransfer).
		Return(true, nil)
	m.txRepo.EXPECT().GetTransaction(gomock.Any(), tx.ID).Return(tx, nil)

	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		RefundEscrow(gomock.Any(), tx.ListingID, tx.BuyerID, tx.BuyerWallet).
		Return("", false)

	// Rolled back to the status the scan saw
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID,
			[]models.TransactionStatus{models.TxStatusProcessingTransfer}, models.TxStatusTransferPending).
		Return(true, nil)

	summary, err := uc.ProcessTransferDeadlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeRetry])
	require.Len(t, summary.Results.Errors, 1)
}

func TestProcessTransferDeadlines_StaleClaimReprocessed(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	// A crashed run abandoned the record mid-claim; the scan reports it once
	// stale and the claim is re-taken from PROCESSING_TRANSFER itself.
	tx := stalledTransaction(0)
	tx.Status = models.TxStatusProcessingTransfer

	m.txRepo.EXPECT().
		ListTransferDeadlineExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Transaction{*tx}, nil)
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID, transferClaimable, models.TxStatusProcessingTransfer).
		Return(true, nil)
	m.txRepo.EXPECT().GetTransaction(gomock.Any(), tx.ID).Return(tx, nil)

	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		RefundEscrow(gomock.Any(), tx.ListingID, tx.BuyerID, tx.BuyerWallet).
		Return("RefundSig222", true)
	m.txRepo.EXPECT().
		FinalizeTransferRefund(gomock.Any(), tx.ID, "RefundSig222", gomock.Any()).
		Return(nil)

	summary, err := uc.ProcessTransferDeadlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeRefunded])
	assert.Empty(t, summary.Results.Errors)
}

func TestProcessTransferDeadlines_ClaimLostSkips(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := stalledTransaction(0)

	m.txRepo.EXPECT().
		ListTransferDeadlineExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Transaction{*tx}, nil)
	m.txRepo.EXPECT().
		ClaimStatus(gomock.Any(), tx.ID, transferClaimable, models.TxStatusProcessingTransfer).
		Return(false, nil)

	summary, err := uc.ProcessTransferDeadlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Results.Counts[models.OutcomeSkipped])
}
