package category

import (
	"context"
	"sort"
)

type StubCategoryRepo struct {
	nextID int
	data   map[int]Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{nextID: 0, data: map[int]Category{}}
}

func (s *StubCategoryRepo) FindAll(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Type != categories[j].Type {
			return categories[i].Type < categories[j].Type
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *StubCategoryRepo) FindByID(ctx context.Context, id int) (Category, error) {
	category, ok := s.data[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *StubCategoryRepo) Store(ctx context.Context, category Category) (int, error) {
	for _, existing := range s.data {
		if existing.Name == category.Name {
			return 0, ErrCategoryNameTaken
		}
	}
	s.nextID++
	category.ID = s.nextID
	s.data[category.ID] = category
	return category.ID, nil
}

// Add inserts a category directly, bypassing validation. Test helper.
func (s *StubCategoryRepo) Add(category Category) Category {
	if category.ID == 0 {
		s.nextID++
		category.ID = s.nextID
	} else if category.ID > s.nextID {
		s.nextID = category.ID
	}
	s.data[category.ID] = category
	return category
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[int]Category{}
}
