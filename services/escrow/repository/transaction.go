package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

const transactionColumns = `
	id, listing_id, buyer_id, seller_id, status,
	sale_price, platform_fee, seller_proceeds, currency, payment_method,
	on_chain_tx, seller_wallet, buyer_wallet,
	has_partners, partner_deposit_deadline, transfer_checklist,
	transfer_started_at, transfer_completed_at, released_at, paid_at, expired_at,
	created_at, updated_at
`

// CreateTransaction inserts a transaction and its partner rows in one scope
func (r *EscrowRepo) CreateTransaction(ctx context.Context, tx *models.Transaction, partners []models.TransactionPartner) error {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (
			id, listing_id, buyer_id, seller_id, status,
			sale_price, platform_fee, seller_proceeds, currency, payment_method,
			seller_wallet, buyer_wallet,
			has_partners, partner_deposit_deadline, transfer_checklist,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = dbTx.ExecContext(ctx, query,
		tx.ID, tx.ListingID, tx.BuyerID, tx.SellerID, tx.Status,
		tx.SalePrice, tx.PlatformFee, tx.SellerProceeds, tx.Currency, tx.PaymentMethod,
		tx.SellerWallet, tx.BuyerWallet,
		tx.HasPartners, tx.PartnerDepositDeadline, tx.TransferChecklist,
		tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for i := range partners {
		p := &partners[i]
		_, err = dbTx.ExecContext(ctx, `
			INSERT INTO transaction_partners (
				id, transaction_id, wallet_address, user_id, percentage, deposit_status
			) VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.TransactionID, p.WalletAddress, uuidOrNil(p.UserID), p.Percentage, p.DepositStatus)
		if err != nil {
			return fmt.Errorf("failed to insert transaction partner: %w", err)
		}
	}

	// Reserve the listing for the duration of the purchase
	if _, err = dbTx.ExecContext(ctx,
		`UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.ListingStatusReserved, tx.ListingID,
	); err != nil {
		return fmt.Errorf("failed to reserve listing: %w", err)
	}

	return dbTx.Commit()
}

// GetTransaction retrieves a transaction by ID
func (r *EscrowRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

// ClaimStatus is the idempotent claim protocol: a single conditional update
// that succeeds for exactly one caller among concurrent attempts. Zero rows
// updated means another caller already transitioned the record; that is a
// negative result, not an error, and is never retried.
func (r *EscrowRepo) ClaimStatus(ctx context.Context, id uuid.UUID, from []models.TransactionStatus, to models.TransactionStatus) (bool, error) {
	query, args, err := sqlx.In(
		`UPDATE transactions SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (?)`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to build claim query: %w", err)
	}
	query = r.db.Rebind(query)

	var claimed bool
	err = r.retrier.Execute(ctx, func(ctx context.Context) error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		rows, execErr := res.RowsAffected()
		if execErr != nil {
			return execErr
		}
		claimed = rows == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to claim transaction %s: %w", id, err)
	}
	return claimed, nil
}

// ConfirmItem wraps the whole confirm read-modify-write in a serializable
// scope: read the transaction and its partner rows, apply the mutation,
// persist the checklist/status/timestamps, and - when apply completed the
// transaction - increment the volume counters and finalize the listing in the
// same scope. Serialization conflicts are retried with backoff; apply's own
// errors roll the scope back and are surfaced unchanged.
func (r *EscrowRepo) ConfirmItem(ctx context.Context, id uuid.UUID, apply escrow.ConfirmApplyFunc) (*models.Transaction, error) {
	var result *models.Transaction

	err := r.retrier.Execute(ctx, func(ctx context.Context) error {
		dbTx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("failed to begin serializable scope: %w", err)
		}
		defer dbTx.Rollback()

		tx, err := r.scanTransaction(dbTx.QueryRowContext(ctx,
			`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
		if err != nil {
			return err
		}

		partners, err := r.getPartnersTx(ctx, dbTx, id)
		if err != nil {
			return err
		}

		prevStatus := tx.Status
		if err := apply(tx, partners); err != nil {
			return err
		}

		_, err = dbTx.ExecContext(ctx, `
			UPDATE transactions SET
				status = $1,
				transfer_checklist = $2,
				transfer_started_at = $3,
				transfer_completed_at = $4,
				released_at = $5,
				updated_at = NOW()
			WHERE id = $6
		`, tx.Status, tx.TransferChecklist, tx.TransferStartedAt, tx.TransferCompletedAt, tx.ReleasedAt, tx.ID)
		if err != nil {
			return fmt.Errorf("failed to persist checklist: %w", err)
		}

		// The prior-status guard makes the counter increment idempotent: a
		// retried completion path sees COMPLETED -> COMPLETED and skips it.
		if tx.Status == models.TxStatusCompleted && prevStatus != models.TxStatusCompleted {
			if err := r.applyCompletionTx(ctx, dbTx, tx); err != nil {
				return err
			}
		}

		if err := dbTx.Commit(); err != nil {
			return fmt.Errorf("failed to commit confirm scope: %w", err)
		}
		result = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *EscrowRepo) applyCompletionTx(ctx context.Context, dbTx *sqlx.Tx, tx *models.Transaction) error {
	if _, err := dbTx.ExecContext(ctx, `
		UPDATE users SET sales_volume = sales_volume + $1, total_sales = total_sales + 1 WHERE id = $2
	`, tx.SellerProceeds, tx.SellerID); err != nil {
		return fmt.Errorf("failed to update seller volume: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE users SET purchase_volume = purchase_volume + $1, total_purchases = total_purchases + 1 WHERE id = $2
	`, tx.SalePrice, tx.BuyerID); err != nil {
		return fmt.Errorf("failed to update buyer volume: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.ListingStatusSold, tx.ListingID,
	); err != nil {
		return fmt.Errorf("failed to finalize listing: %w", err)
	}
	return nil
}

// ListDepositDeadlineExpired returns group-buy transactions whose partner
// deposit deadline has passed, oldest deadline first. Rows stranded in
// PROCESSING_DEPOSITS whose claim went stale (a crash between claim and
// settle) are included once their last update predates staleBefore.
func (r *EscrowRepo) ListDepositDeadlineExpired(ctx context.Context, now, staleBefore time.Time, limit int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE has_partners = TRUE
		AND ((status = $1 AND partner_deposit_deadline < $2)
			OR (status = $3 AND updated_at < $4))
		ORDER BY partner_deposit_deadline ASC
		LIMIT $5
	`
	return r.listTransactions(ctx, query,
		models.TxStatusAwaitingPartnerDeposit, now,
		models.TxStatusProcessingDeposits, staleBefore, limit)
}

// ListTransferDeadlineExpired returns transactions stuck in a transfer phase
// past the grace period, oldest first, plus stale PROCESSING_TRANSFER claims.
func (r *EscrowRepo) ListTransferDeadlineExpired(ctx context.Context, cutoff, staleBefore time.Time, limit int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE ((status IN ($1, $2, $3) AND created_at < $4)
			OR (status = $5 AND updated_at < $6))
		ORDER BY created_at ASC
		LIMIT $7
	`
	return r.listTransactions(ctx, query,
		models.TxStatusTransferPending, models.TxStatusTransferInProgress, models.TxStatusInEscrow,
		cutoff, models.TxStatusProcessingTransfer, staleBefore, limit)
}

// ListUnsettledCompleted returns completed transactions whose escrow release
// never got a confirmed signature, plus stale PENDING_RELEASE claims.
func (r *EscrowRepo) ListUnsettledCompleted(ctx context.Context, cutoff, staleBefore time.Time, limit int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE (on_chain_tx IS NULL OR on_chain_tx = '')
		AND ((status = $1 AND updated_at < $2)
			OR (status = $3 AND updated_at < $4))
		ORDER BY updated_at ASC
		LIMIT $5
	`
	return r.listTransactions(ctx, query,
		models.TxStatusCompleted, cutoff,
		models.TxStatusPendingRelease, staleBefore, limit)
}

// FinalizeDepositCancel commits the deadline-cancel outcome in one atomic
// batch: the claimed transaction to CANCELLED, timed-out partners flagged for
// notification, and the listing reservation released. The conditional status
// update keeps the batch safe against a lost claim.
func (r *EscrowRepo) FinalizeDepositCancel(ctx context.Context, batch escrow.DepositCancel) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		dbTx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin cancel batch: %w", err)
		}
		defer dbTx.Rollback()

		res, err := dbTx.ExecContext(ctx, `
			UPDATE transactions SET status = $1, expired_at = $2, updated_at = NOW()
			WHERE id = $3 AND status = $4
		`, models.TxStatusCancelled, batch.CancelledAt, batch.TransactionID, models.TxStatusProcessingDeposits)
		if err != nil {
			return fmt.Errorf("failed to cancel transaction: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows != 1 {
			return escrow.ErrClaimLost
		}

		if len(batch.TimedOutPartnerIDs) > 0 {
			query, args, err := sqlx.In(
				`UPDATE transaction_partners SET notified_timeout = TRUE WHERE id IN (?)`,
				batch.TimedOutPartnerIDs,
			)
			if err != nil {
				return fmt.Errorf("failed to build partner timeout query: %w", err)
			}
			if _, err = dbTx.ExecContext(ctx, dbTx.Rebind(query), args...); err != nil {
				return fmt.Errorf("failed to flag timed-out partners: %w", err)
			}
		}

		if _, err = dbTx.ExecContext(ctx,
			`UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2`,
			models.ListingStatusActive, batch.ListingID,
		); err != nil {
			return fmt.Errorf("failed to release listing reservation: %w", err)
		}

		return dbTx.Commit()
	})
}

// FinalizeTransferRefund commits the transfer-deadline refund outcome in one
// atomic batch: the claimed transaction to REFUNDED with the confirmed refund
// signature, and the listing restored to active.
func (r *EscrowRepo) FinalizeTransferRefund(ctx context.Context, id uuid.UUID, signature string, refundedAt time.Time) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		dbTx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin refund batch: %w", err)
		}
		defer dbTx.Rollback()

		res, err := dbTx.ExecContext(ctx, `
			UPDATE transactions SET status = $1, on_chain_tx = $2, expired_at = $3, updated_at = NOW()
			WHERE id = $4 AND status = $5
		`, models.TxStatusRefunded, signature, refundedAt, id, models.TxStatusProcessingTransfer)
		if err != nil {
			return fmt.Errorf("failed to mark transaction refunded: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows != 1 {
			return escrow.ErrClaimLost
		}

		var listingID uuid.UUID
		if err = dbTx.QueryRowContext(ctx,
			`SELECT listing_id FROM transactions WHERE id = $1`, id,
		).Scan(&listingID); err != nil {
			return fmt.Errorf("failed to look up listing: %w", err)
		}

		if _, err = dbTx.ExecContext(ctx,
			`UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2`,
			models.ListingStatusActive, listingID,
		); err != nil {
			return fmt.Errorf("failed to restore listing: %w", err)
		}

		return dbTx.Commit()
	})
}

// SetOnChainTx records the confirmed escrow-release signature. It also folds a
// PENDING_RELEASE claim back to COMPLETED, so the release-retry job and the
// post-confirm release path share it.
func (r *EscrowRepo) SetOnChainTx(ctx context.Context, id uuid.UUID, signature string, releasedAt time.Time) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE transactions SET status = $1, on_chain_tx = $2, released_at = $3, updated_at = NOW()
			WHERE id = $4 AND status IN ($5, $6)
		`, models.TxStatusCompleted, signature, releasedAt, id,
			models.TxStatusCompleted, models.TxStatusPendingRelease)
		return err
	})
}

// SetListingStatus updates a listing's status
func (r *EscrowRepo) SetListingStatus(ctx context.Context, listingID uuid.UUID, status models.ListingStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, listingID,
	)
	return err
}

func (r *EscrowRepo) listTransactions(ctx context.Context, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tx, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *EscrowRepo) scanTransaction(row rowScanner) (*models.Transaction, error) {
	tx := &models.Transaction{}
	var onChainTx, sellerWallet, buyerWallet, paymentMethod sql.NullString
	var depositDeadline, transferStarted, transferCompleted, released, paid, expired sql.NullTime

	err := row.Scan(
		&tx.ID, &tx.ListingID, &tx.BuyerID, &tx.SellerID, &tx.Status,
		&tx.SalePrice, &tx.PlatformFee, &tx.SellerProceeds, &tx.Currency, &paymentMethod,
		&onChainTx, &sellerWallet, &buyerWallet,
		&tx.HasPartners, &depositDeadline, &tx.TransferChecklist,
		&transferStarted, &transferCompleted, &released, &paid, &expired,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, escrow.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tx.PaymentMethod = paymentMethod.String
	tx.OnChainTx = onChainTx.String
	tx.SellerWallet = sellerWallet.String
	tx.BuyerWallet = buyerWallet.String
	if depositDeadline.Valid {
		tx.PartnerDepositDeadline = &depositDeadline.Time
	}
	if transferStarted.Valid {
		tx.TransferStartedAt = &transferStarted.Time
	}
	if transferCompleted.Valid {
		tx.TransferCompletedAt = &transferCompleted.Time
	}
	if released.Valid {
		tx.ReleasedAt = &released.Time
	}
	if paid.Valid {
		tx.PaidAt = &paid.Time
	}
	if expired.Valid {
		tx.ExpiredAt = &expired.Time
	}
	return tx, nil
}

func uuidOrNil(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
