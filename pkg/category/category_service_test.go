package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_Create(t *testing.T) {
	service := NewCategoryService(NewStubCategoryRepo())
	ctx := context.Background()

	// when
	created, err := service.Create(ctx, Category{Name: "Groceries", Type: TypeExpense})

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, defaultIcon, created.Icon)
	assert.Equal(t, defaultColor, created.Color)
	assert.False(t, created.IsDefault)
}

func TestServiceImpl_Create_Validation(t *testing.T) {
	service := NewCategoryService(NewStubCategoryRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		category Category
		wantErr  error
	}{
		{"empty name", Category{Name: "", Type: TypeExpense}, ErrInvalidName},
		{"name too long", Category{Name: string(make([]byte, 51)), Type: TypeExpense}, ErrInvalidName},
		{"bad type", Category{Name: "Groceries", Type: "savings"}, ErrInvalidType},
		{"bad color", Category{Name: "Groceries", Type: TypeExpense, Color: "red"}, ErrInvalidColor},
		{"short hex", Category{Name: "Groceries", Type: TypeExpense, Color: "#FFF"}, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.category)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServiceImpl_Create_DuplicateName(t *testing.T) {
	service := NewCategoryService(NewStubCategoryRepo())
	ctx := context.Background()

	_, err := service.Create(ctx, Category{Name: "Groceries", Type: TypeExpense})
	require.NoError(t, err)

	_, err = service.Create(ctx, Category{Name: "Groceries", Type: TypeExpense})
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestServiceImpl_GetAll_Ordering(t *testing.T) {
	repo := NewStubCategoryRepo()
	service := NewCategoryService(repo)
	ctx := context.Background()

	// given
	repo.Add(Category{Name: "Transport", Type: TypeExpense})
	repo.Add(Category{Name: "Salary", Type: TypeIncome})
	repo.Add(Category{Name: "Food", Type: TypeExpense})

	// when
	categories, err := service.GetAll(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Transport", categories[1].Name)
	assert.Equal(t, "Salary", categories[2].Name)
}
