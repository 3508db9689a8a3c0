package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/internal/pkg/retry"
)

// EscrowRepo implements escrow.TransactionRepo and escrow.OfferRepo on
// PostgreSQL. Claim operations and finalize batches run through a bounded
// exponential-backoff retrier for transient storage errors; a zero-rows
// conditional update is a negative claim result, never retried.
type EscrowRepo struct {
	cfg     *models.Config
	db      *sqlx.DB
	retrier *retry.Retrier
}

// NewEscrowRepo creates the ledger repository
func NewEscrowRepo(cfg *models.Config, db *sqlx.DB) *EscrowRepo {
	retryCfg := retry.DefaultConfig()
	retryCfg.RetryableFunc = retry.StorageRetryableFunc()

	return &EscrowRepo{
		cfg:     cfg,
		db:      db,
		retrier: retry.New(retryCfg, logger.GetGlobalLogger()),
	}
}
