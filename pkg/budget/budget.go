package budget

import (
	"time"

	"github.com/centsible/centsible/pkg/category"
)

// Budget is a per-category spending limit for one calendar month. SpentAmount
// is derived from the transaction ledger; it is recomputed from scratch on
// every reconciliation, never incremented.
type Budget struct {
	ID           int
	CategoryID   int
	Month        int
	Year         int
	BudgetAmount float64
	SpentAmount  float64
}

func (b Budget) Period() Period {
	return Period{Month: b.Month, Year: b.Year}
}

// Period identifies a calendar month.
type Period struct {
	Month int
	Year  int
}

// PeriodOf returns the period the given instant falls into, in UTC.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Start returns the first instant of the period, 00:00:00 UTC on the first day.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last instant of the period, 23:59:59 UTC on the last day.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Second)
}

func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// BudgetWithCategory is a budget row with its category joined.
type BudgetWithCategory struct {
	Budget
	Category category.Category
}

// BudgetView is what the service hands out: the budget, its category and the
// evaluation of its spending against the limit.
type BudgetView struct {
	Budget
	Category category.Category
	Evaluation
}
