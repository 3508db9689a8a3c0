package constants

// NATS Subjects
const (
	// Notification sink
	SubjectNotificationCreate = "notification.create"

	// Escrow lifecycle events
	SubjectTransactionFunded    = "transaction.funded"
	SubjectTransactionCancelled = "transaction.cancelled"
	SubjectTransactionCompleted = "transaction.completed"
	SubjectTransactionDisputed  = "transaction.disputed"
	SubjectOfferExpired         = "offer.expired"
)
