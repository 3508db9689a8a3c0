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

const offerColumns = `
	id, listing_id, buyer_id, buyer_wallet, amount, currency,
	deadline, status, on_chain_tx, failure_count, expired_at,
	created_at, updated_at
`

// CreateOffer inserts a new active offer
func (r *EscrowRepo) CreateOffer(ctx context.Context, offer *models.Offer) error {
	query := `
		INSERT INTO offers (
			id, listing_id, buyer_id, buyer_wallet, amount, currency,
			deadline, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		offer.ID, offer.ListingID, offer.BuyerID, offer.BuyerWallet,
		offer.Amount, offer.Currency, offer.Deadline, offer.Status,
		offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

// GetOffer retrieves an offer by ID
func (r *EscrowRepo) GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	return r.scanOffer(r.db.QueryRowContext(ctx, query, id))
}

// ClaimOfferStatus is the offer-side conditional-update claim
func (r *EscrowRepo) ClaimOfferStatus(ctx context.Context, id uuid.UUID, from []models.OfferStatus, to models.OfferStatus) (bool, error) {
	query, args, err := sqlx.In(
		`UPDATE offers SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (?)`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to build offer claim query: %w", err)
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
		return false, fmt.Errorf("failed to claim offer %s: %w", id, err)
	}
	return claimed, nil
}

// ListExpired returns active offers whose deadline has passed, oldest first.
// Offers stranded in EXPIRING by a crash mid-claim are included once their
// last update predates staleBefore.
func (r *EscrowRepo) ListExpired(ctx context.Context, now, staleBefore time.Time, limit int) ([]models.Offer, error) {
	query := `
		SELECT ` + offerColumns + ` FROM offers
		WHERE ((status = $1 AND deadline < $2)
			OR (status = $3 AND updated_at < $4))
		ORDER BY deadline ASC
		LIMIT $5
	`
	rows, err := r.db.QueryContext(ctx, query,
		models.OfferStatusActive, now, models.OfferStatusExpiring, staleBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		offer, err := r.scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	return offers, rows.Err()
}

// FinalizeExpired marks a claimed offer EXPIRED with its refund signature.
// Expired offers are retained indefinitely for audit.
func (r *EscrowRepo) FinalizeExpired(ctx context.Context, id uuid.UUID, signature string, expiredAt time.Time) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, `
			UPDATE offers SET status = $1, on_chain_tx = $2, expired_at = $3, updated_at = NOW()
			WHERE id = $4 AND status = $5
		`, models.OfferStatusExpired, signature, expiredAt, id, models.OfferStatusExpiring)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows != 1 {
			return escrow.ErrClaimLost
		}
		return nil
	})
}

// RecordExpiryFailure rolls the EXPIRING claim back to ACTIVE and counts the
// failed settlement attempt so the next pass retries the offer.
func (r *EscrowRepo) RecordExpiryFailure(ctx context.Context, id uuid.UUID) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE offers SET status = $1, failure_count = failure_count + 1, updated_at = NOW()
			WHERE id = $2 AND status = $3
		`, models.OfferStatusActive, id, models.OfferStatusExpiring)
		return err
	})
}

func (r *EscrowRepo) scanOffer(row rowScanner) (*models.Offer, error) {
	offer := &models.Offer{}
	var onChainTx sql.NullString
	var expiredAt sql.NullTime

	err := row.Scan(
		&offer.ID, &offer.ListingID, &offer.BuyerID, &offer.BuyerWallet,
		&offer.Amount, &offer.Currency, &offer.Deadline, &offer.Status,
		&onChainTx, &offer.FailureCount, &expiredAt,
		&offer.CreatedAt, &offer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, escrow.ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}

	offer.OnChainTx = onChainTx.String
	if expiredAt.Valid {
		offer.ExpiredAt = &expiredAt.Time
	}
	return offer, nil
}
