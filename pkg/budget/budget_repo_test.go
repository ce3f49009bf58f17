package budget

import (
	"context"
	"database/sql"
	"testing"

	"github.com/centsible/centsible/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, db *sql.DB, uid string) int {
	t.Helper()
	result, err := db.Exec(
		`INSERT INTO user (uid, username, email, password_hash) VALUES (?, ?, ?, ?)`,
		uid, "user-"+uid, uid+"@example.com", "hash")
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func seedCategory(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.Exec(
		`INSERT INTO category (name, type, icon, color) VALUES (?, 'expense', '🛒', '#EF4444')`, name)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func TestRepoStoreAndFindByKey(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()
	userId := seedUser(t, db, "u1")
	categoryId := seedCategory(t, db, "Groceries")

	// when
	id, err := repo.Store(ctx, userId, Budget{
		CategoryID: categoryId, Month: 3, Year: 2025, BudgetAmount: 250, SpentAmount: 40,
	})

	// then
	require.NoError(t, err)
	budget, err := repo.FindByKey(ctx, userId, categoryId, Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, id, budget.ID)
	assert.Equal(t, 250.0, budget.BudgetAmount)
	assert.Equal(t, 40.0, budget.SpentAmount)
}

func TestRepoStoreDuplicateKey(t *testing.T) {
	// given an existing budget for the key
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()
	userId := seedUser(t, db, "u1")
	categoryId := seedCategory(t, db, "Groceries")
	_, err := repo.Store(ctx, userId, Budget{CategoryID: categoryId, Month: 3, Year: 2025, BudgetAmount: 250})
	require.NoError(t, err)

	// when the same key is stored again
	_, err = repo.Store(ctx, userId, Budget{CategoryID: categoryId, Month: 3, Year: 2025, BudgetAmount: 100})

	// then
	assert.ErrorIs(t, err, ErrBudgetExists)

	// but a different month is fine
	_, err = repo.Store(ctx, userId, Budget{CategoryID: categoryId, Month: 4, Year: 2025, BudgetAmount: 100})
	assert.NoError(t, err)
}

func TestRepoFindAllForPeriodJoinsAndOrders(t *testing.T) {
	// given two budgets with category names out of order
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()
	userId := seedUser(t, db, "u1")
	zooId := seedCategory(t, db, "Zoo")
	aquariumId := seedCategory(t, db, "Aquarium")
	_, err := repo.Store(ctx, userId, Budget{CategoryID: zooId, Month: 3, Year: 2025, BudgetAmount: 10})
	require.NoError(t, err)
	_, err = repo.Store(ctx, userId, Budget{CategoryID: aquariumId, Month: 3, Year: 2025, BudgetAmount: 20})
	require.NoError(t, err)

	// when
	budgets, err := repo.FindAllForPeriod(ctx, userId, Period{Month: 3, Year: 2025})

	// then rows come back sorted by category name with the category joined
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "Aquarium", budgets[0].Category.Name)
	assert.Equal(t, "🛒", budgets[0].Category.Icon)
	assert.Equal(t, "#EF4444", budgets[0].Category.Color)
	assert.Equal(t, "Zoo", budgets[1].Category.Name)
}

func TestRepoUpdateSpent(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()
	userId := seedUser(t, db, "u1")
	categoryId := seedCategory(t, db, "Groceries")
	id, err := repo.Store(ctx, userId, Budget{CategoryID: categoryId, Month: 3, Year: 2025, BudgetAmount: 250})
	require.NoError(t, err)

	// when
	updated, err := repo.UpdateSpent(ctx, userId, categoryId, Period{Month: 3, Year: 2025}, 77.5)

	// then
	require.NoError(t, err)
	assert.True(t, updated)
	budget, err := repo.FindByID(ctx, userId, id)
	require.NoError(t, err)
	assert.Equal(t, 77.5, budget.SpentAmount)

	// updating a key without a budget reports false
	updated, err = repo.UpdateSpent(ctx, userId, categoryId, Period{Month: 4, Year: 2025}, 10)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestRepoDeleteIsUserScoped(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	categoryId := seedCategory(t, db, "Groceries")
	id, err := repo.Store(ctx, owner, Budget{CategoryID: categoryId, Month: 3, Year: 2025, BudgetAmount: 250})
	require.NoError(t, err)

	// another user cannot delete it
	deleted, err := repo.Delete(ctx, other, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	// the owner can
	deleted, err = repo.Delete(ctx, owner, id)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.FindByID(ctx, owner, id)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestRepoWithTransactionRollsBackOnError(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()
	userId := seedUser(t, db, "u1")
	categoryId := seedCategory(t, db, "Groceries")

	// when the transaction function fails after a write
	err := repo.WithTransaction(ctx, func(txRepo Repo) error {
		if _, err := txRepo.Store(ctx, userId, Budget{CategoryID: categoryId, Month: 3, Year: 2025, BudgetAmount: 250}); err != nil {
			return err
		}
		return assert.AnError
	})

	// then nothing was persisted
	assert.ErrorIs(t, err, assert.AnError)
	_, err = repo.FindByKey(ctx, userId, categoryId, Period{Month: 3, Year: 2025})
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}
