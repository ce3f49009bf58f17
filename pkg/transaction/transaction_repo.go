package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centsible/centsible/pkg/category"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction not found")

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

type Repo interface {
	Store(ctx context.Context, userId int, txn Transaction) (int, error)
	FindAllForUser(ctx context.Context, userId int) ([]Transaction, error)
	FindByID(ctx context.Context, userId int, id int) (Transaction, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
	// SumExpenses returns the total amount of expense transactions for the
	// given user and category with a date inside [from, to]. No matching rows
	// yields 0, not an error.
	SumExpenses(ctx context.Context, userId int, categoryId int, from, to time.Time) (float64, error)
	// ListExpensesByDate buckets the user's expenses in [from, to] by calendar
	// date, ordered by date ascending. Dates without expenses are omitted.
	ListExpensesByDate(ctx context.Context, userId int, from, to time.Time) ([]DailyAmount, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, txn Transaction) (int, error) {
	query := `INSERT INTO transactions (user_id, category_id, amount, description, type, date)
              VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	var categoryParam interface{}
	if txn.CategoryID != 0 {
		categoryParam = txn.CategoryID
	}

	result, err := stmt.ExecContext(ctx,
		userId,
		categoryParam,
		txn.Amount,
		txn.Description,
		txn.Type,
		txn.Date.UTC().Format(dateTimeLayout),
	)
	if err != nil {
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

func (r *RepoImpl) FindAllForUser(ctx context.Context, userId int) ([]Transaction, error) {
	query := `SELECT t.id, t.amount, t.description, t.type, t.date,
                     c.id, c.name, c.type, c.icon, c.color, c.is_default
              FROM transactions t
              LEFT JOIN category c ON c.id = t.category_id
              WHERE t.user_id = ?
              ORDER BY t.date DESC, t.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return transactions, nil
}

func (r *RepoImpl) FindByID(ctx context.Context, userId int, id int) (Transaction, error) {
	query := `SELECT t.id, t.amount, t.description, t.type, t.date,
                     c.id, c.name, c.type, c.icon, c.color, c.is_default
              FROM transactions t
              LEFT JOIN category c ON c.id = t.category_id
              WHERE t.id = ? AND t.user_id = ?`

	row := r.db.QueryRowContext(ctx, query, id, userId)
	txn, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	} else if err != nil {
		log.Error(err)
		return Transaction{}, err
	}
	return txn, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := `DELETE FROM transactions WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userId)
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

func (r *RepoImpl) SumExpenses(ctx context.Context, userId int, categoryId int, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
              WHERE user_id = ? AND category_id = ? AND type = 'expense' AND date BETWEEN ? AND ?`

	var sum float64
	err := r.db.QueryRowContext(ctx, query,
		userId, categoryId, from.UTC().Format(dateTimeLayout), to.UTC().Format(dateTimeLayout),
	).Scan(&sum)
	if err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return sum, nil
}

func (r *RepoImpl) ListExpensesByDate(ctx context.Context, userId int, from, to time.Time) ([]DailyAmount, error) {
	query := `SELECT DATE(date), SUM(amount) FROM transactions
              WHERE user_id = ? AND type = 'expense' AND date BETWEEN ? AND ?
              GROUP BY DATE(date)
              ORDER BY DATE(date)`

	rows, err := r.db.QueryContext(ctx, query,
		userId, from.UTC().Format(dateTimeLayout), to.UTC().Format(dateTimeLayout))
	if err != nil {
		err := fmt.Errorf("could not query daily expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var daily []DailyAmount
	for rows.Next() {
		var dateString string
		var amount float64
		if err := rows.Scan(&dateString, &amount); err != nil {
			err := fmt.Errorf("could not scan daily expense: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := time.Parse(dateLayout, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse bucket date: %w", err)
			log.Error(err)
			return nil, err
		}
		daily = append(daily, DailyAmount{Date: date, Amount: amount})
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return daily, nil
}

func scanTransaction(scan func(...any) error) (Transaction, error) {
	var txn Transaction
	var dateString string
	var categoryId sql.NullInt64
	var categoryName, categoryType, categoryIcon, categoryColor sql.NullString
	var categoryDefault sql.NullBool

	err := scan(
		&txn.ID,
		&txn.Amount,
		&txn.Description,
		&txn.Type,
		&dateString,
		&categoryId,
		&categoryName,
		&categoryType,
		&categoryIcon,
		&categoryColor,
		&categoryDefault,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, err
		}
		return Transaction{}, fmt.Errorf("could not scan transaction: %w", err)
	}

	date, err := time.Parse(dateTimeLayout, dateString)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not parse transaction date: %w", err)
	}
	txn.Date = date.UTC()

	if categoryId.Valid {
		txn.CategoryID = int(categoryId.Int64)
		txn.Category = &category.Category{
			ID:        int(categoryId.Int64),
			Name:      categoryName.String,
			Type:      category.CategoryType(categoryType.String),
			Icon:      categoryIcon.String,
			Color:     categoryColor.String,
			IsDefault: categoryDefault.Bool,
		}
	}
	return txn, nil
}
