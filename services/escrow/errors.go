package escrow

import (
	"errors"
	"fmt"

	"github.com/forgebay/escrow/internal/pkg/models"
)

var (
	// ErrNotAuthorized means the actor is not the buyer, the seller, or an
	// accepted partner of the transaction. Surfaced to the caller, never retried.
	ErrNotAuthorized = errors.New("actor is not the buyer, seller, or an accepted partner")

	// ErrClaimLost means another concurrent process already claimed the record.
	// Reconciliation jobs treat it as a normal skip, not a failure.
	ErrClaimLost = errors.New("record was claimed by a concurrent process")

	// ErrOnChainSubmissionFailed means the settlement call did not return a
	// confirmed signature. The record must be left in a state a future pass
	// can retry; it is never marked settled without a signature.
	ErrOnChainSubmissionFailed = errors.New("on-chain settlement was not confirmed")

	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrOfferNotFound         = errors.New("offer not found")
	ErrPartnerNotFound       = errors.New("transaction partner not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
)

// InvalidTransitionError reports a state change that is not in the transition
// table, naming both states.
type InvalidTransitionError struct {
	From models.TransactionStatus
	To   models.TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// InvalidStateError reports an operation attempted while the transaction is in
// a status that does not allow it.
type InvalidStateError struct {
	Status models.TransactionStatus
	Action string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while transaction is %s", e.Action, e.Status)
}
