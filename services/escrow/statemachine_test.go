package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgebay/escrow/internal/pkg/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.TransactionStatus
		to      models.TransactionStatus
		allowed bool
	}{
		{"pending to awaiting deposits", models.TxStatusPending, models.TxStatusAwaitingPartnerDeposit, true},
		{"pending to funded", models.TxStatusPending, models.TxStatusFunded, true},
		{"pending to cancelled", models.TxStatusPending, models.TxStatusCancelled, true},
		{"awaiting deposits to funded", models.TxStatusAwaitingPartnerDeposit, models.TxStatusFunded, true},
		{"awaiting deposits to cancelled", models.TxStatusAwaitingPartnerDeposit, models.TxStatusCancelled, true},
		{"funded to in escrow", models.TxStatusFunded, models.TxStatusInEscrow, true},
		{"in escrow to transfer in progress", models.TxStatusInEscrow, models.TxStatusTransferInProgress, true},
		{"in escrow to disputed", models.TxStatusInEscrow, models.TxStatusDisputed, true},
		{"transfer pending to disputed", models.TxStatusTransferPending, models.TxStatusDisputed, true},
		{"transfer in progress to completed", models.TxStatusTransferInProgress, models.TxStatusCompleted, true},
		{"awaiting confirmation to completed", models.TxStatusAwaitingConfirmation, models.TxStatusCompleted, true},
		{"disputed to completed", models.TxStatusDisputed, models.TxStatusCompleted, true},
		{"disputed to refunded", models.TxStatusDisputed, models.TxStatusRefunded, true},

		{"pending cannot complete directly", models.TxStatusPending, models.TxStatusCompleted, false},
		{"funded cannot complete directly", models.TxStatusFunded, models.TxStatusCompleted, false},
		{"completed is terminal", models.TxStatusCompleted, models.TxStatusRefunded, false},
		{"refunded is terminal", models.TxStatusRefunded, models.TxStatusPending, false},
		{"cancelled is terminal", models.TxStatusCancelled, models.TxStatusFunded, false},
		{"transfer pending cannot refund directly", models.TxStatusTransferPending, models.TxStatusRefunded, false},
		{"no edge into transient claim status", models.TxStatusFunded, models.TxStatusProcessingDeposits, false},
		{"no edge out of transient claim status", models.TxStatusProcessingTransfer, models.TxStatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition(t *testing.T) {
	t.Run("legal edge mutates the status", func(t *testing.T) {
		tx := &models.Transaction{Status: models.TxStatusTransferInProgress}

		err := Transition(tx, models.TxStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, models.TxStatusCompleted, tx.Status)
	})

	t.Run("illegal edge leaves the status untouched", func(t *testing.T) {
		tx := &models.Transaction{Status: models.TxStatusFunded}

		err := Transition(tx, models.TxStatusCompleted)

		var invalid *InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, models.TxStatusFunded, invalid.From)
		assert.Equal(t, models.TxStatusCompleted, invalid.To)
		assert.Equal(t, models.TxStatusFunded, tx.Status)
	})
}

func TestIsConfirmable(t *testing.T) {
	confirmable := []models.TransactionStatus{
		models.TxStatusFunded,
		models.TxStatusPaid,
		models.TxStatusInEscrow,
		models.TxStatusTransferPending,
		models.TxStatusTransferInProgress,
		models.TxStatusAwaitingConfirmation,
	}
	for _, s := range confirmable {
		assert.True(t, IsConfirmable(s), string(s))
	}

	notConfirmable := []models.TransactionStatus{
		models.TxStatusPending,
		models.TxStatusAwaitingPartnerDeposit,
		models.TxStatusDisputed,
		models.TxStatusCompleted,
		models.TxStatusRefunded,
		models.TxStatusCancelled,
		models.TxStatusProcessingDeposits,
		models.TxStatusProcessingTransfer,
		models.TxStatusPendingRelease,
	}
	for _, s := range notConfirmable {
		assert.False(t, IsConfirmable(s), string(s))
	}
}
