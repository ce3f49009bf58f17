package budget

import (
	"context"
	"sort"

	"github.com/centsible/centsible/pkg/category"
)

type StubBudgetRepo struct {
	nextID     int
	data       map[int]Budget
	owners     map[int]int
	categories map[int]category.Category
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{
		data:       map[int]Budget{},
		owners:     map[int]int{},
		categories: map[int]category.Category{},
	}
}

// AddCategory makes a category available for FindAllForPeriod joins.
func (s *StubBudgetRepo) AddCategory(cat category.Category) {
	s.categories[cat.ID] = cat
}

func (s *StubBudgetRepo) WithTransaction(ctx context.Context, fn func(repo Repo) error) error {
	return fn(s)
}

func (s *StubBudgetRepo) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	for id, existing := range s.data {
		if s.owners[id] == userId &&
			existing.CategoryID == budget.CategoryID &&
			existing.Month == budget.Month &&
			existing.Year == budget.Year {
			return 0, ErrBudgetExists
		}
	}
	s.nextID++
	budget.ID = s.nextID
	s.data[budget.ID] = budget
	s.owners[budget.ID] = userId
	return budget.ID, nil
}

func (s *StubBudgetRepo) FindByKey(ctx context.Context, userId int, categoryId int, period Period) (Budget, error) {
	for id, budget := range s.data {
		if s.owners[id] == userId &&
			budget.CategoryID == categoryId &&
			budget.Month == period.Month &&
			budget.Year == period.Year {
			return budget, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (s *StubBudgetRepo) FindByID(ctx context.Context, userId int, id int) (Budget, error) {
	budget, ok := s.data[id]
	if !ok || s.owners[id] != userId {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) FindAllForPeriod(ctx context.Context, userId int, period Period) ([]BudgetWithCategory, error) {
	var budgets []BudgetWithCategory
	for id, budget := range s.data {
		if s.owners[id] != userId || budget.Month != period.Month || budget.Year != period.Year {
			continue
		}
		budgets = append(budgets, BudgetWithCategory{
			Budget:   budget,
			Category: s.categories[budget.CategoryID],
		})
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Category.Name < budgets[j].Category.Name
	})
	return budgets, nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	if _, ok := s.data[budget.ID]; !ok || s.owners[budget.ID] != userId {
		return false, nil
	}
	s.data[budget.ID] = budget
	return true, nil
}

func (s *StubBudgetRepo) UpdateSpent(ctx context.Context, userId int, categoryId int, period Period, spent float64) (bool, error) {
	for id, budget := range s.data {
		if s.owners[id] == userId &&
			budget.CategoryID == categoryId &&
			budget.Month == period.Month &&
			budget.Year == period.Year {
			budget.SpentAmount = spent
			s.data[id] = budget
			return true, nil
		}
	}
	return false, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok || s.owners[id] != userId {
		return false, nil
	}
	delete(s.data, id)
	delete(s.owners, id)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[int]Budget{}
	s.owners = map[int]int{}
	s.categories = map[int]category.Category{}
}
