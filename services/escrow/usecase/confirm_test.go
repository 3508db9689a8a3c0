package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/internal/utils"
	"github.com/forgebay/escrow/services/escrow"
	"github.com/forgebay/escrow/services/escrow/mocks"
)

type ucMocks struct {
	txRepo     *mocks.MockTransactionRepo
	offerRepo  *mocks.MockOfferRepo
	settlement *mocks.MockSettlementClient
	notifier   *mocks.MockNotificationGW
}

func newTestUC(t *testing.T) (*EscrowUC, *ucMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	m := &ucMocks{
		txRepo:     mocks.NewMockTransactionRepo(ctrl),
		offerRepo:  mocks.NewMockOfferRepo(ctrl),
		settlement: mocks.NewMockSettlementClient(ctrl),
		notifier:   mocks.NewMockNotificationGW(ctrl),
	}
	m.notifier.EXPECT().PublishNotification(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &models.Config{}
	uc := NewEscrowUC(cfg, m.txRepo, m.offerRepo, m.settlement, m.notifier, nil)
	return uc, m, ctrl
}

// stubConfirmItem wires the mock repository to run the apply callback against
// the given fixture, the way the real repository does inside its serializable
// scope.
func stubConfirmItem(m *ucMocks, tx *models.Transaction, partners []models.TransactionPartner) {
	m.txRepo.EXPECT().
		ConfirmItem(gomock.Any(), tx.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, apply escrow.ConfirmApplyFunc) (*models.Transaction, error) {
			if err := apply(tx, partners); err != nil {
				return nil, err
			}
			return tx, nil
		})
}

func singleBuyerTransaction() *models.Transaction {
	return &models.Transaction{
		ID:           uuid.New(),
		ListingID:    uuid.New(),
		BuyerID:      uuid.New(),
		SellerID:     uuid.New(),
		Status:       models.TxStatusFunded,
		SellerWallet: "SellerWallet111",
		BuyerWallet:  "BuyerWallet111",
		TransferChecklist: models.Checklist{
			{Key: "github", Required: true},
			{Key: "domain", Required: true},
		},
	}
}

func TestConfirmTransferItem_SellerRecordsEvidence(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	stubConfirmItem(m, tx, nil)

	got, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       tx.SellerID,
		Role:          escrow.RoleSeller,
		Evidence:      "transferred repo to buyer-org",
	})

	require.NoError(t, err)
	item := got.TransferChecklist.Item("github")
	assert.True(t, item.SellerConfirmed)
	assert.NotNil(t, item.SellerConfirmedAt)
	assert.Equal(t, "transferred repo to buyer-org", item.SellerEvidence)
	assert.Equal(t, utils.ContentHash("transferred repo to buyer-org"), item.SellerEvidenceHash)
	assert.False(t, item.BuyerConfirmed)

	// The first confirmation walks the status forward and stamps the start
	assert.Equal(t, models.TxStatusTransferInProgress, got.Status)
	assert.NotNil(t, got.TransferStartedAt)
}

func TestConfirmTransferItem_WrongActorRejected(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	stubConfirmItem(m, tx, nil)

	_, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       uuid.New(), // not the seller
		Role:          escrow.RoleSeller,
	})

	assert.ErrorIs(t, err, escrow.ErrNotAuthorized)
}

func TestConfirmTransferItem_NotConfirmableStatus(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	tx.Status = models.TxStatusAwaitingPartnerDeposit
	stubConfirmItem(m, tx, nil)

	_, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       tx.SellerID,
		Role:          escrow.RoleSeller,
	})

	var invalidState *escrow.InvalidStateError
	assert.ErrorAs(t, err, &invalidState)
	assert.Equal(t, models.TxStatusAwaitingPartnerDeposit, invalidState.Status)
}

func TestConfirmTransferItem_UnknownItem(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	stubConfirmItem(m, tx, nil)

	_, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "aws-account",
		ActorID:       tx.SellerID,
		Role:          escrow.RoleSeller,
	})

	assert.ErrorIs(t, err, escrow.ErrChecklistItemNotFound)
}

func TestConfirmTransferItem_LastConfirmationCompletesAndReleases(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	tx.Status = models.TxStatusTransferInProgress
	for idx := range tx.TransferChecklist {
		tx.TransferChecklist[idx].SellerConfirmed = true
	}
	tx.TransferChecklist[0].BuyerConfirmed = true

	stubConfirmItem(m, tx, nil)
	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		ReleaseEscrow(gomock.Any(), tx.ListingID, tx.BuyerID, tx.SellerWallet).
		Return("ReleaseSig111", true)
	m.txRepo.EXPECT().
		SetOnChainTx(gomock.Any(), tx.ID, "ReleaseSig111", gomock.Any()).
		Return(nil)

	got, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "domain",
		ActorID:       tx.BuyerID,
		Role:          escrow.RoleBuyer,
	})

	require.NoError(t, err)
	assert.Equal(t, models.TxStatusCompleted, got.Status)
	assert.NotNil(t, got.TransferCompletedAt)
	assert.Equal(t, "ReleaseSig111", got.OnChainTx)
	assert.NotNil(t, got.ReleasedAt)
}

func TestConfirmTransferItem_FailedReleaseLeavesUnsettled(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	tx.Status = models.TxStatusAwaitingConfirmation
	for idx := range tx.TransferChecklist {
		tx.TransferChecklist[idx].SellerConfirmed = true
	}
	tx.TransferChecklist[0].BuyerConfirmed = true

	stubConfirmItem(m, tx, nil)
	m.settlement.EXPECT().Enabled().Return(true)
	m.settlement.EXPECT().
		ReleaseEscrow(gomock.Any(), tx.ListingID, tx.BuyerID, tx.SellerWallet).
		Return("", false)
	// No SetOnChainTx: the release-retry job owns the recovery

	got, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "domain",
		ActorID:       tx.BuyerID,
		Role:          escrow.RoleBuyer,
	})

	require.NoError(t, err)
	assert.Equal(t, models.TxStatusCompleted, got.Status)
	assert.Empty(t, got.OnChainTx)
}

func groupTransaction(deposited int) (*models.Transaction, []models.TransactionPartner) {
	tx := singleBuyerTransaction()
	tx.HasPartners = true
	tx.Status = models.TxStatusTransferInProgress

	var partners []models.TransactionPartner
	for i := 0; i < deposited; i++ {
		userID := uuid.New()
		partners = append(partners, models.TransactionPartner{
			ID:            uuid.New(),
			TransactionID: tx.ID,
			UserID:        &userID,
			WalletAddress: uuid.New().String(),
			Percentage:    20,
			DepositStatus: models.DepositStatusDeposited,
		})
	}
	return tx, partners
}

func TestConfirmTransferItem_MajorityVote(t *testing.T) {
	// Two deposited partners plus the lead buyer: three voters, majority at two
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx, partners := groupTransaction(2)

	stubConfirmItem(m, tx, partners)
	got, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       *partners[0].UserID,
		Role:          escrow.RolePartner,
	})
	require.NoError(t, err)

	item := got.TransferChecklist.Item("github")
	require.NotNil(t, item.MajorityVote)
	assert.Equal(t, 3, item.MajorityVote.TotalVoters)
	assert.Equal(t, 2, item.MajorityVote.MajorityNeeded)
	assert.Equal(t, 1, item.MajorityVote.ConfirmedCount)
	assert.False(t, item.MajorityVote.HasMajority)
	assert.False(t, item.BuyerConfirmed, "one vote of three must not confirm")

	// The lead buyer's vote tips the majority
	stubConfirmItem(m, tx, partners)
	got, err = uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       tx.BuyerID,
		Role:          escrow.RoleBuyer,
	})
	require.NoError(t, err)

	item = got.TransferChecklist.Item("github")
	assert.Equal(t, 2, item.MajorityVote.ConfirmedCount)
	assert.True(t, item.MajorityVote.HasMajority)
	assert.True(t, item.BuyerConfirmed)
	assert.NotNil(t, item.BuyerConfirmedAt)
}

func TestConfirmTransferItem_DuplicateVoteIsIdempotent(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx, partners := groupTransaction(2)

	for i := 0; i < 2; i++ {
		stubConfirmItem(m, tx, partners)
		_, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
			TransactionID: tx.ID,
			ItemKey:       "github",
			ActorID:       *partners[0].UserID,
			Role:          escrow.RolePartner,
		})
		require.NoError(t, err)
	}

	item := tx.TransferChecklist.Item("github")
	assert.Equal(t, 1, item.MajorityVote.ConfirmedCount)
	assert.False(t, item.BuyerConfirmed)
}

func TestConfirmTransferItem_PendingPartnerCannotVote(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx, partners := groupTransaction(2)
	partners[1].DepositStatus = models.DepositStatusPending

	stubConfirmItem(m, tx, partners)
	_, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       *partners[1].UserID,
		Role:          escrow.RolePartner,
	})

	assert.ErrorIs(t, err, escrow.ErrNotAuthorized)
}

func TestConfirmTransferItem_PartnerRoleOnSingleBuyerRejected(t *testing.T) {
	uc, m, ctrl := newTestUC(t)
	defer ctrl.Finish()

	tx := singleBuyerTransaction()
	stubConfirmItem(m, tx, nil)

	_, err := uc.ConfirmTransferItem(context.Background(), escrow.ConfirmItemRequest{
		TransactionID: tx.ID,
		ItemKey:       "github",
		ActorID:       uuid.New(),
		Role:          escrow.RolePartner,
	})

	assert.ErrorIs(t, err, escrow.ErrNotAuthorized)
}
