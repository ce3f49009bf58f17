package budget

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/category"
	"github.com/centsible/centsible/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOverviewService(t *testing.T) (*OverviewServiceImpl, *StubBudgetRepo, *transaction.StubTransactionRepo) {
	budgets := NewStubBudgetRepo()
	ledger := transaction.NewStubTransactionRepo()
	t.Cleanup(budgets.Cleanup)
	t.Cleanup(ledger.Cleanup)

	service := NewOverviewService(budgets, ledger)
	service.clock = &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	return service, budgets, ledger
}

func storeBudget(t *testing.T, budgets *StubBudgetRepo, name string, categoryId int, budgetAmount, spentAmount float64) {
	t.Helper()
	budgets.AddCategory(category.Category{ID: categoryId, Name: name, Type: category.TypeExpense})
	_, err := budgets.Store(context.Background(), 1, Budget{
		CategoryID: categoryId, Month: 3, Year: 2025,
		BudgetAmount: budgetAmount, SpentAmount: spentAmount,
	})
	require.NoError(t, err)
}

func TestGetOverviewTotals(t *testing.T) {
	// given three budgets summing to 600 with 100 spent
	service, budgets, _ := setupOverviewService(t)
	storeBudget(t, budgets, "Groceries", 1, 300, 60)
	storeBudget(t, budgets, "Transport", 2, 200, 40)
	storeBudget(t, budgets, "Fun", 3, 100, 0)

	// when
	overview, err := service.GetOverview(budgetUserContext(1), Period{Month: 3, Year: 2025})

	// then
	require.NoError(t, err)
	assert.Equal(t, 600.0, overview.TotalBudget)
	assert.Equal(t, 100.0, overview.TotalSpent)
	assert.Equal(t, 500.0, overview.RemainingBudget)
	assert.Equal(t, 17.0, overview.BudgetUsedPercentage)
	assert.Equal(t, 3, overview.CategoriesCount)
	assert.Len(t, overview.Budgets, 3)
}

func TestGetOverviewAlertPartition(t *testing.T) {
	// given budgets on every side of the thresholds
	service, budgets, _ := setupOverviewService(t)
	storeBudget(t, budgets, "Comfortable", 1, 100, 50)
	storeBudget(t, budgets, "AtThreshold", 2, 100, 80)
	storeBudget(t, budgets, "AtLimit", 3, 100, 100)
	storeBudget(t, budgets, "Blown", 4, 100, 120)

	// when
	overview, err := service.GetOverview(budgetUserContext(1), Period{Month: 3, Year: 2025})

	// then spending at the limit still counts as close, not over
	require.NoError(t, err)
	assert.Equal(t, 1, overview.OverBudgetCount)
	assert.Equal(t, []string{"Blown"}, overview.Alerts.OverBudget)
	assert.Equal(t, 2, overview.CloseToLimitCount)
	assert.ElementsMatch(t, []string{"AtThreshold", "AtLimit"}, overview.Alerts.CloseToLimit)
}

func TestGetOverviewDailySpendingIsSparse(t *testing.T) {
	// given expenses on two days of the month
	service, budgets, ledger := setupOverviewService(t)
	storeBudget(t, budgets, "Groceries", 1, 100, 0)
	for _, expense := range []struct {
		amount float64
		date   time.Time
	}{
		{12, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)},
		{8, time.Date(2025, 3, 2, 19, 0, 0, 0, time.UTC)},
		{5, time.Date(2025, 3, 28, 9, 0, 0, 0, time.UTC)},
	} {
		_, err := ledger.Store(context.Background(), 1, transaction.Transaction{
			Amount: expense.amount, Description: "x", Type: transaction.TypeExpense,
			CategoryID: 1, Date: expense.date,
		})
		require.NoError(t, err)
	}

	// when
	overview, err := service.GetOverview(budgetUserContext(1), Period{Month: 3, Year: 2025})

	// then only days with spending appear, in order
	require.NoError(t, err)
	require.Len(t, overview.DailySpending, 2)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), overview.DailySpending[0].Date)
	assert.Equal(t, 20.0, overview.DailySpending[0].Amount)
	assert.Equal(t, time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), overview.DailySpending[1].Date)
	assert.Equal(t, 5.0, overview.DailySpending[1].Amount)
}

func TestGetOverviewEmptyPeriod(t *testing.T) {
	// given no budgets at all
	service, _, _ := setupOverviewService(t)

	// when
	overview, err := service.GetOverview(budgetUserContext(1), Period{Month: 3, Year: 2025})

	// then everything is zero and the slices are empty, not nil
	require.NoError(t, err)
	assert.Zero(t, overview.TotalBudget)
	assert.Zero(t, overview.BudgetUsedPercentage)
	assert.NotNil(t, overview.Budgets)
	assert.Empty(t, overview.Budgets)
	assert.NotNil(t, overview.Alerts.OverBudget)
	assert.NotNil(t, overview.DailySpending)
}

func TestGetOverviewDefaultsToCurrentPeriod(t *testing.T) {
	// given a budget in the clock's month and one far in the past
	service, budgets, _ := setupOverviewService(t)
	storeBudget(t, budgets, "Groceries", 1, 100, 0)
	budgets.AddCategory(category.Category{ID: 2, Name: "Old", Type: category.TypeExpense})
	_, err := budgets.Store(context.Background(), 1, Budget{
		CategoryID: 2, Month: 1, Year: 2024, BudgetAmount: 999,
	})
	require.NoError(t, err)

	// when queried with a zero period
	overview, err := service.GetOverview(budgetUserContext(1), Period{})

	// then
	require.NoError(t, err)
	assert.Equal(t, Period{Month: 3, Year: 2025}, overview.Period)
	assert.Equal(t, 100.0, overview.TotalBudget)
}
