package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/forgebay/escrow/internal/pkg/models"
)

const partnerColumns = `
	id, transaction_id, wallet_address, user_id, percentage,
	deposit_status, deposit_tx, refund_tx,
	has_confirmed_transfer, confirmed_at, notified_timeout
`

// GetPartners retrieves the partner rows of a transaction. Decision logic must
// always call this fresh after a claim succeeds; deposit status may have
// changed between a batch scan and the claim.
func (r *EscrowRepo) GetPartners(ctx context.Context, transactionID uuid.UUID) ([]models.TransactionPartner, error) {
	return r.getPartners(ctx, r.db, transactionID)
}

func (r *EscrowRepo) getPartnersTx(ctx context.Context, dbTx *sqlx.Tx, transactionID uuid.UUID) ([]models.TransactionPartner, error) {
	return r.getPartners(ctx, dbTx, transactionID)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *EscrowRepo) getPartners(ctx context.Context, q queryer, transactionID uuid.UUID) ([]models.TransactionPartner, error) {
	query := `SELECT ` + partnerColumns + ` FROM transaction_partners WHERE transaction_id = $1 ORDER BY percentage DESC`

	rows, err := q.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction partners: %w", err)
	}
	defer rows.Close()

	var partners []models.TransactionPartner
	for rows.Next() {
		var p models.TransactionPartner
		var userID uuid.NullUUID
		var depositTx, refundTx sql.NullString
		var confirmedAt sql.NullTime

		err := rows.Scan(
			&p.ID, &p.TransactionID, &p.WalletAddress, &userID, &p.Percentage,
			&p.DepositStatus, &depositTx, &refundTx,
			&p.HasConfirmedTransfer, &confirmedAt, &p.NotifiedTimeout,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction partner: %w", err)
		}

		if userID.Valid {
			id := userID.UUID
			p.UserID = &id
		}
		p.DepositTx = depositTx.String
		p.RefundTx = refundTx.String
		if confirmedAt.Valid {
			p.ConfirmedAt = &confirmedAt.Time
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// MarkPartnerDeposited records a verified on-chain partner deposit. The update
// is conditional on the parent transaction still awaiting deposits, in the
// same statement, so a deposit cannot slip in underneath a held deadline
// claim and be treated as timed-out by the in-flight cancel. A false result
// means the row was not written: either the partner already deposited or the
// window is no longer open.
func (r *EscrowRepo) MarkPartnerDeposited(ctx context.Context, partnerID uuid.UUID, signature string) (bool, error) {
	var deposited bool
	err := r.retrier.Execute(ctx, func(ctx context.Context) error {
		res, execErr := r.db.ExecContext(ctx, `
			UPDATE transaction_partners SET deposit_status = $1, deposit_tx = $2
			FROM transactions
			WHERE transaction_partners.id = $3
			AND transaction_partners.deposit_status = $4
			AND transactions.id = transaction_partners.transaction_id
			AND transactions.status = $5
		`, models.DepositStatusDeposited, signature, partnerID,
			models.DepositStatusPending, models.TxStatusAwaitingPartnerDeposit)
		if execErr != nil {
			return execErr
		}
		rows, execErr := res.RowsAffected()
		if execErr != nil {
			return execErr
		}
		deposited = rows == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return deposited, nil
}

// MarkPartnerRefunded records a confirmed partner deposit refund. Written as
// each signature confirms, before the terminal cancel batch, so that a refund
// is never re-submitted after a partial failure.
func (r *EscrowRepo) MarkPartnerRefunded(ctx context.Context, partnerID uuid.UUID, signature string) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE transaction_partners SET deposit_status = $1, refund_tx = $2
			WHERE id = $3 AND deposit_status = $4
		`, models.DepositStatusRefunded, signature, partnerID, models.DepositStatusDeposited)
		return err
	})
}
