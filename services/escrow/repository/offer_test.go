package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

func TestClaimOfferStatus(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	claimQuery := regexp.QuoteMeta(`UPDATE offers SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (?)`)

	t.Run("accept wins against expiry", func(t *testing.T) {
		mock.ExpectExec(claimQuery).
			WithArgs(models.OfferStatusAccepted, id, models.OfferStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		claimed, err := repo.ClaimOfferStatus(context.Background(), id,
			[]models.OfferStatus{models.OfferStatusActive}, models.OfferStatusAccepted)

		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("second claimant loses", func(t *testing.T) {
		mock.ExpectExec(claimQuery).
			WithArgs(models.OfferStatusExpiring, id, models.OfferStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		claimed, err := repo.ClaimOfferStatus(context.Background(), id,
			[]models.OfferStatus{models.OfferStatusActive}, models.OfferStatusExpiring)

		require.NoError(t, err)
		assert.False(t, claimed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeExpired(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()
	expiredAt := time.Now().UTC()

	t.Run("finalizes a held claim", func(t *testing.T) {
		mock.ExpectExec(`UPDATE offers SET status = \$1, on_chain_tx = \$2, expired_at = \$3`).
			WithArgs(models.OfferStatusExpired, "ExpireSig1", expiredAt, id, models.OfferStatusExpiring).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.FinalizeExpired(context.Background(), id, "ExpireSig1", expiredAt)
		assert.NoError(t, err)
	})

	t.Run("lost claim surfaces as such", func(t *testing.T) {
		mock.ExpectExec(`UPDATE offers SET status = \$1, on_chain_tx = \$2, expired_at = \$3`).
			WithArgs(models.OfferStatusExpired, "ExpireSig1", expiredAt, id, models.OfferStatusExpiring).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.FinalizeExpired(context.Background(), id, "ExpireSig1", expiredAt)
		assert.ErrorIs(t, err, escrow.ErrClaimLost)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordExpiryFailure(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE offers SET status = \$1, failure_count = failure_count \+ 1`).
		WithArgs(models.OfferStatusActive, id, models.OfferStatusExpiring).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordExpiryFailure(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpired(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()
	staleBefore := now.Add(-15 * time.Minute)
	offerID := uuid.New()
	strandedID := uuid.New()

	// One active offer past its deadline and one stranded in EXPIRING by a
	// crashed run; the scan surfaces both.
	rows := sqlmock.NewRows([]string{
		"id", "listing_id", "buyer_id", "buyer_wallet", "amount", "currency",
		"deadline", "status", "on_chain_tx", "failure_count", "expired_at",
		"created_at", "updated_at",
	}).AddRow(
		offerID, uuid.New(), uuid.New(), "BuyerWallet1", int64(1000), "SOL",
		now.Add(-time.Hour), models.OfferStatusActive, nil, 0, nil,
		now.Add(-48*time.Hour), now.Add(-time.Hour),
	).AddRow(
		strandedID, uuid.New(), uuid.New(), "BuyerWallet2", int64(2000), "SOL",
		now.Add(-2*time.Hour), models.OfferStatusExpiring, nil, 1, nil,
		now.Add(-48*time.Hour), now.Add(-time.Hour),
	)

	mock.ExpectQuery(`SELECT .+ FROM offers`).
		WithArgs(models.OfferStatusActive, now, models.OfferStatusExpiring, staleBefore, 100).
		WillReturnRows(rows)

	offers, err := repo.ListExpired(context.Background(), now, staleBefore, 100)

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, offerID, offers[0].ID)
	assert.Empty(t, offers[0].OnChainTx)
	assert.Nil(t, offers[0].ExpiredAt)
	assert.Equal(t, strandedID, offers[1].ID)
	assert.Equal(t, models.OfferStatusExpiring, offers[1].Status)
}
