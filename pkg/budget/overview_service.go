package budget

import (
	"context"
	"fmt"
	"math"

	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/transaction"
	"github.com/centsible/centsible/pkg/user"
)

// Alerts carries the category names whose spending needs attention.
type Alerts struct {
	OverBudget   []string
	CloseToLimit []string
}

// Overview aggregates one period's budgets into totals, alerts and a daily
// spending series.
type Overview struct {
	Period               Period
	TotalBudget          float64
	TotalSpent           float64
	RemainingBudget      float64
	BudgetUsedPercentage float64
	CategoriesCount      int
	OverBudgetCount      int
	CloseToLimitCount    int
	Budgets              []BudgetView
	Alerts               Alerts
	DailySpending        []transaction.DailyAmount
}

type OverviewService interface {
	GetOverview(ctx context.Context, period Period) (Overview, error)
}

type OverviewServiceImpl struct {
	budgets Repo
	ledger  transaction.Repo
	clock   utils.Clock
}

func NewOverviewService(budgets Repo, ledger transaction.Repo) *OverviewServiceImpl {
	return &OverviewServiceImpl{
		budgets: budgets,
		ledger:  ledger,
		clock:   &utils.SystemClock{},
	}
}

func (s *OverviewServiceImpl) GetOverview(ctx context.Context, period Period) (Overview, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if period.IsZero() {
		period = PeriodOf(s.clock.Now())
	}

	budgets, err := s.budgets.FindAllForPeriod(ctx, userId, period)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Period:          period,
		CategoriesCount: len(budgets),
		Budgets:         make([]BudgetView, 0, len(budgets)),
		Alerts:          Alerts{OverBudget: []string{}, CloseToLimit: []string{}},
	}

	for _, budget := range budgets {
		view := toView(budget.Budget, budget.Category)
		overview.Budgets = append(overview.Budgets, view)
		overview.TotalBudget += budget.BudgetAmount
		overview.TotalSpent += budget.SpentAmount

		// Warning means spending sits in [0.8*budget, budget], so the two
		// alert lists partition exactly like the per-budget status.
		switch view.Status {
		case StatusOver:
			overview.OverBudgetCount++
			overview.Alerts.OverBudget = append(overview.Alerts.OverBudget, budget.Category.Name)
		case StatusWarning:
			overview.CloseToLimitCount++
			overview.Alerts.CloseToLimit = append(overview.Alerts.CloseToLimit, budget.Category.Name)
		}
	}

	overview.RemainingBudget = overview.TotalBudget - overview.TotalSpent
	if overview.TotalBudget > 0 {
		overview.BudgetUsedPercentage = math.Round(overview.TotalSpent / overview.TotalBudget * 100)
	}

	daily, err := s.ledger.ListExpensesByDate(ctx, userId, period.Start(), period.End())
	if err != nil {
		return Overview{}, err
	}
	if daily == nil {
		daily = []transaction.DailyAmount{}
	}
	overview.DailySpending = daily

	return overview, nil
}
