package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/category"
	"github.com/centsible/centsible/pkg/user"
)

var (
	ErrInvalidAmount = errors.New("budget amount must be zero or positive")
	ErrInvalidPeriod = errors.New("month must be 1-12 and year within the accepted range")
)

type Service interface {
	// SetBudget creates or overwrites the budget for (category, period). The
	// bool result reports whether a new budget was created.
	SetBudget(ctx context.Context, categoryId int, amount float64, period Period) (BudgetView, bool, error)
	// GetBudgets lists the user's budgets for the period. A zero period
	// defaults to the current month.
	GetBudgets(ctx context.Context, period Period) ([]BudgetView, Period, error)
	DeleteBudget(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo       Repo
	categories category.Repo
	reconciler *Reconciler
	cfg        config.Budget
	clock      utils.Clock
}

func NewBudgetService(repo Repo, categories category.Repo, reconciler *Reconciler, cfg config.Budget) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		categories: categories,
		reconciler: reconciler,
		cfg:        cfg,
		clock:      &utils.SystemClock{},
	}
}

func (s *ServiceImpl) SetBudget(ctx context.Context, categoryId int, amount float64, period Period) (BudgetView, bool, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return BudgetView{}, false, fmt.Errorf("failed to get current user: %w", err)
	}

	if amount < 0 {
		return BudgetView{}, false, ErrInvalidAmount
	}
	if err := s.validatePeriod(period); err != nil {
		return BudgetView{}, false, err
	}

	cat, err := s.categories.FindByID(ctx, categoryId)
	if err != nil {
		return BudgetView{}, false, err
	}

	// Settle the spent amount up front so a freshly created budget starts
	// consistent with the ledger instead of at zero.
	spent, err := s.reconciler.Reconcile(ctx, userId, categoryId, period)
	if err != nil {
		return BudgetView{}, false, err
	}

	var result Budget
	var created bool
	err = s.repo.WithTransaction(ctx, func(repo Repo) error {
		existing, err := repo.FindByKey(ctx, userId, categoryId, period)
		if errors.Is(err, ErrBudgetNotFound) {
			budget := Budget{
				CategoryID:   categoryId,
				Month:        period.Month,
				Year:         period.Year,
				BudgetAmount: amount,
				SpentAmount:  spent,
			}
			id, err := repo.Store(ctx, userId, budget)
			if err != nil {
				return err
			}
			budget.ID = id
			result = budget
			created = true
			return nil
		} else if err != nil {
			return err
		}

		existing.BudgetAmount = amount
		existing.SpentAmount = spent
		if _, err := repo.Update(ctx, userId, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return BudgetView{}, false, err
	}

	return toView(result, cat), created, nil
}

func (s *ServiceImpl) GetBudgets(ctx context.Context, period Period) ([]BudgetView, Period, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return nil, Period{}, fmt.Errorf("failed to get current user: %w", err)
	}

	period = s.defaultPeriod(period)
	if err := s.validatePeriod(period); err != nil {
		return nil, Period{}, err
	}

	budgets, err := s.repo.FindAllForPeriod(ctx, userId, period)
	if err != nil {
		return nil, Period{}, err
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, budget := range budgets {
		views = append(views, toView(budget.Budget, budget.Category))
	}
	return views, period, nil
}

func (s *ServiceImpl) DeleteBudget(ctx context.Context, id int) error {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

func (s *ServiceImpl) validatePeriod(period Period) error {
	if period.Month < 1 || period.Month > 12 {
		return ErrInvalidPeriod
	}
	maxYear := s.clock.Now().UTC().Year() + s.cfg.MaxFutureYears
	if period.Year < s.cfg.MinYear || period.Year > maxYear {
		return ErrInvalidPeriod
	}
	return nil
}

func (s *ServiceImpl) defaultPeriod(period Period) Period {
	if period.IsZero() {
		return PeriodOf(s.clock.Now())
	}
	return period
}

func toView(budget Budget, cat category.Category) BudgetView {
	return BudgetView{
		Budget:     budget,
		Category:   cat,
		Evaluation: Classify(budget.BudgetAmount, budget.SpentAmount),
	}
}
