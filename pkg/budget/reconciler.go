package budget

import (
	"context"
	"fmt"
	"sync"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type reconcileKey struct {
	userId     int
	categoryId int
	period     Period
}

// Reconciler keeps spent amounts in sync with the transaction ledger. It
// always recomputes the full period sum instead of applying deltas, so running
// it twice in a row is a no-op and a missed run is repaired by the next one.
type Reconciler struct {
	budgets Repo
	ledger  transaction.Repo

	mu    sync.Mutex
	locks map[reconcileKey]*sync.Mutex
}

func NewReconciler(budgets Repo, ledger transaction.Repo) *Reconciler {
	return &Reconciler{
		budgets: budgets,
		ledger:  ledger,
		locks:   map[reconcileKey]*sync.Mutex{},
	}
}

// Reconcile recomputes the expense sum for (userId, categoryId, period) and
// writes it into the matching budget row. When no budget exists for the key
// the sum is still returned and nothing is written.
func (r *Reconciler) Reconcile(ctx context.Context, userId int, categoryId int, period Period) (float64, error) {
	// The ledger read and the budget write must not interleave with another
	// reconciliation of the same key, or the slower one overwrites the newer
	// sum with a stale value.
	unlock := r.lock(reconcileKey{userId, categoryId, period})
	defer unlock()

	spent, err := r.ledger.SumExpenses(ctx, userId, categoryId, period.Start(), period.End())
	if err != nil {
		return 0, fmt.Errorf("could not sum expenses: %w", err)
	}

	updated, err := r.budgets.UpdateSpent(ctx, userId, categoryId, period, spent)
	if err != nil {
		return 0, fmt.Errorf("could not update spent amount: %w", err)
	}
	if !updated {
		log.Debugf("no budget for user %d, category %d, %d-%02d; skipping spent update",
			userId, categoryId, period.Year, period.Month)
	}
	return spent, nil
}

func (r *Reconciler) lock(key reconcileKey) func() {
	r.mu.Lock()
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// SubscribeTo registers the reconciler on ledger change events. Income and
// uncategorized transactions never touch a budget and are ignored.
func (r *Reconciler) SubscribeTo(bus *event_bus.EventBus) {
	handler := func(e event_bus.EventT[event_bus.TransactionChanged]) error {
		change := e.Data
		if change.Type != string(transaction.TypeExpense) || change.CategoryID == 0 {
			return nil
		}
		_, err := r.Reconcile(e.Context(), change.UserID, change.CategoryID, PeriodOf(change.OccurredAt))
		return err
	}
	event_bus.SubscribeTyped(bus, event_bus.TransactionCreated, handler)
	event_bus.SubscribeTyped(bus, event_bus.TransactionDeleted, handler)
}
