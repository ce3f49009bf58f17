package transaction

import (
	"time"

	"github.com/centsible/centsible/pkg/category"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry. Entries are immutable once recorded;
// the only mutation is deletion.
type Transaction struct {
	ID          int
	Amount      float64
	Description string
	Type        TransactionType
	// CategoryID is 0 when the transaction is uncategorized.
	CategoryID int
	Category   *category.Category
	Date       time.Time
}

// DailyAmount is one bucket of the day-by-day expense series: all expense
// amounts of one calendar date summed up. Dates without expenses produce no
// bucket.
type DailyAmount struct {
	Date   time.Time
	Amount float64
}
