package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already exists for this category and period")
)

type Repo interface {
	WithTransaction(ctx context.Context, fn func(repo Repo) error) error
	Store(ctx context.Context, userId int, budget Budget) (int, error)
	FindByKey(ctx context.Context, userId int, categoryId int, period Period) (Budget, error)
	FindByID(ctx context.Context, userId int, id int) (Budget, error)
	FindAllForPeriod(ctx context.Context, userId int, period Period) ([]BudgetWithCategory, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	// UpdateSpent overwrites the spent amount of the budget identified by
	// (userId, categoryId, period). Returns false when no such budget exists.
	UpdateSpent(ctx context.Context, userId int, categoryId int, period Period, spent float64) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewBudgetRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db, tx: nil}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepoImpl) getQueryer() interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepoImpl) WithTransaction(ctx context.Context, fn func(repo Repo) error) error {
	if r.tx != nil {
		// already inside a transaction, just run
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepoImpl{db: r.db, tx: tx}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepoImpl) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budget (user_id, category_id, month, year, budget_amount, spent_amount)
              VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		userId,
		budget.CategoryID,
		budget.Month,
		budget.Year,
		budget.BudgetAmount,
		budget.SpentAmount,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrBudgetExists
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (r *RepoImpl) FindByKey(ctx context.Context, userId int, categoryId int, period Period) (Budget, error) {
	query := `SELECT id, category_id, month, year, budget_amount, spent_amount
              FROM budget
              WHERE user_id = ? AND category_id = ? AND month = ? AND year = ?`

	row := r.getQueryer().QueryRowContext(ctx, query, userId, categoryId, period.Month, period.Year)
	return scanBudget(row)
}

func (r *RepoImpl) FindByID(ctx context.Context, userId int, id int) (Budget, error) {
	query := `SELECT id, category_id, month, year, budget_amount, spent_amount
              FROM budget
              WHERE id = ? AND user_id = ?`

	row := r.getQueryer().QueryRowContext(ctx, query, id, userId)
	return scanBudget(row)
}

func (r *RepoImpl) FindAllForPeriod(ctx context.Context, userId int, period Period) ([]BudgetWithCategory, error) {
	query := `SELECT b.id, b.category_id, b.month, b.year, b.budget_amount, b.spent_amount,
                     c.id, c.name, c.type, c.icon, c.color, c.is_default
              FROM budget b
              JOIN category c ON c.id = b.category_id
              WHERE b.user_id = ? AND b.month = ? AND b.year = ?
              ORDER BY c.name`

	rows, err := r.getQueryer().QueryContext(ctx, query, userId, period.Month, period.Year)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []BudgetWithCategory
	for rows.Next() {
		var budget BudgetWithCategory
		var icon, color sql.NullString
		if err := rows.Scan(
			&budget.ID,
			&budget.CategoryID,
			&budget.Month,
			&budget.Year,
			&budget.BudgetAmount,
			&budget.SpentAmount,
			&budget.Category.ID,
			&budget.Category.Name,
			&budget.Category.Type,
			&icon,
			&color,
			&budget.Category.IsDefault,
		); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budget.Category.Icon = icon.String
		budget.Category.Color = color.String
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return budgets, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET budget_amount = ?, spent_amount = ?
              WHERE id = ? AND user_id = ?`

	result, err := r.getQueryer().ExecContext(ctx, query,
		budget.BudgetAmount, budget.SpentAmount, budget.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) UpdateSpent(ctx context.Context, userId int, categoryId int, period Period, spent float64) (bool, error) {
	query := `UPDATE budget SET spent_amount = ?
              WHERE user_id = ? AND category_id = ? AND month = ? AND year = ?`

	result, err := r.getQueryer().ExecContext(ctx, query,
		spent, userId, categoryId, period.Month, period.Year)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := `DELETE FROM budget WHERE id = ? AND user_id = ?`

	result, err := r.getQueryer().ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanBudget(row *sql.Row) (Budget, error) {
	var budget Budget
	err := row.Scan(
		&budget.ID,
		&budget.CategoryID,
		&budget.Month,
		&budget.Year,
		&budget.BudgetAmount,
		&budget.SpentAmount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		err := fmt.Errorf("could not scan budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}
