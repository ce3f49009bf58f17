package event_bus

import "time"

const (
	TransactionCreated EventType = "transaction.created"
	TransactionDeleted EventType = "transaction.deleted"
)

// TransactionChanged is published whenever a transaction is written to or
// removed from the ledger. Fields mirror the transaction rather than
// referencing pkg/transaction, so subscribers do not import the ledger package.
type TransactionChanged struct {
	UserID     int
	CategoryID int // 0 when the transaction has no category
	Type       string
	Amount     float64
	OccurredAt time.Time
}
