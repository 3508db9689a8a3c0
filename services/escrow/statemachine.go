package escrow

import (
	"github.com/forgebay/escrow/internal/pkg/models"
)

// transitions is the canonical table of legal status edges for a purchase.
// Transient claim statuses (PROCESSING_DEPOSITS, PROCESSING_TRANSFER,
// PENDING_RELEASE, and EXPIRING on offers) are not listed here: they are
// entered and exited only through the conditional-update claim, which also
// rolls them back to the prior public status on failure.
var transitions = map[models.TransactionStatus][]models.TransactionStatus{
	models.TxStatusPending: {
		models.TxStatusAwaitingPartnerDeposit,
		models.TxStatusFunded,
		models.TxStatusCancelled,
	},
	models.TxStatusAwaitingPartnerDeposit: {
		models.TxStatusFunded,
		models.TxStatusPaid,
		models.TxStatusCancelled,
		models.TxStatusRefunded,
	},
	models.TxStatusFunded: {
		models.TxStatusInEscrow,
		models.TxStatusCancelled,
		models.TxStatusRefunded,
	},
	models.TxStatusPaid: {
		models.TxStatusInEscrow,
		models.TxStatusTransferPending,
		models.TxStatusCancelled,
		models.TxStatusRefunded,
	},
	models.TxStatusInEscrow: {
		models.TxStatusTransferPending,
		models.TxStatusTransferInProgress,
		models.TxStatusCancelled,
		models.TxStatusDisputed,
		models.TxStatusRefunded,
	},
	models.TxStatusTransferPending: {
		models.TxStatusTransferInProgress,
		models.TxStatusCancelled,
		models.TxStatusDisputed,
	},
	models.TxStatusTransferInProgress: {
		models.TxStatusAwaitingConfirmation,
		models.TxStatusDisputed,
		models.TxStatusCompleted,
	},
	models.TxStatusAwaitingConfirmation: {
		models.TxStatusCompleted,
		models.TxStatusDisputed,
	},
	models.TxStatusDisputed: {
		models.TxStatusCompleted,
		models.TxStatusRefunded,
	},
}

// confirmableStatuses is the set of statuses in which checklist confirmations
// are accepted.
var confirmableStatuses = map[models.TransactionStatus]bool{
	models.TxStatusFunded:               true,
	models.TxStatusPaid:                 true,
	models.TxStatusInEscrow:             true,
	models.TxStatusTransferPending:      true,
	models.TxStatusTransferInProgress:   true,
	models.TxStatusAwaitingConfirmation: true,
}

// CanTransition reports whether from -> to is a legal edge
func CanTransition(from, to models.TransactionStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the transaction to the requested status, rejecting any edge
// not in the table with an InvalidTransitionError that names both states.
func Transition(t *models.Transaction, to models.TransactionStatus) error {
	if !CanTransition(t.Status, to) {
		return &InvalidTransitionError{From: t.Status, To: to}
	}
	t.Status = to
	return nil
}

// IsConfirmable reports whether checklist confirmations are accepted in the
// given status.
func IsConfirmable(s models.TransactionStatus) bool {
	return confirmableStatuses[s]
}
