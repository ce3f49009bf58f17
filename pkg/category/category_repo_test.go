package category

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoSeededDefaults(t *testing.T) {
	// given a freshly migrated database
	db := test_utils.SetupTestDB(t)
	repo := NewCategoryRepo(db)

	// when
	categories, err := repo.FindAll(context.Background())

	// then the seeded defaults are present, expenses before income
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	for _, category := range categories {
		assert.True(t, category.IsDefault)
	}
	assert.Equal(t, TypeExpense, categories[0].Type)
	assert.Equal(t, TypeIncome, categories[len(categories)-1].Type)
}

func TestRepoStoreAndFindByID(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewCategoryRepo(db)
	ctx := context.Background()

	// when
	id, err := repo.Store(ctx, Category{Name: "Pets", Type: TypeExpense, Icon: "🐕", Color: "#AA5500"})

	// then
	require.NoError(t, err)
	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pets", stored.Name)
	assert.Equal(t, "🐕", stored.Icon)
	assert.Equal(t, "#AA5500", stored.Color)
	assert.False(t, stored.IsDefault)
}

func TestRepoStoreDuplicateName(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewCategoryRepo(db)
	ctx := context.Background()
	_, err := repo.Store(ctx, Category{Name: "Pets", Type: TypeExpense})
	require.NoError(t, err)

	_, err = repo.Store(ctx, Category{Name: "Pets", Type: TypeExpense})
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestRepoFindUnknownCategory(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewCategoryRepo(db)

	_, err := repo.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
