package constants

// Redis key formats
const (
	// Reconciliation job locks (best-effort duplicate-run short circuit)
	KeyLockPartnerDeposits  = "partner-deposits"
	KeyLockOfferExpiry      = "offer-expiry"
	KeyLockTransferDeadline = "transfer-deadlines"
	KeyLockReleaseRetry     = "release-retries"
)
