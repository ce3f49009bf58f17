package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category with this name already exists")
)

type Repo interface {
	FindAll(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id int) (Category, error)
	Store(ctx context.Context, category Category) (int, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) FindAll(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, type, icon, color, is_default FROM category ORDER BY type, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		category, err := scanCategory(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (r *RepoImpl) FindByID(ctx context.Context, id int) (Category, error) {
	query := `SELECT id, name, type, icon, color, is_default FROM category WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	category, err := scanCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepoImpl) Store(ctx context.Context, category Category) (int, error) {
	query := `INSERT INTO category (name, type, icon, color, is_default) VALUES (?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, category.Name, category.Type, category.Icon, category.Color, category.IsDefault)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrCategoryNameTaken
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

func scanCategory(scan func(...any) error) (Category, error) {
	var category Category
	var icon, color sql.NullString
	if err := scan(&category.ID, &category.Name, &category.Type, &icon, &color, &category.IsDefault); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, err
		}
		return Category{}, fmt.Errorf("could not scan category: %w", err)
	}
	if icon.Valid {
		category.Icon = icon.String
	}
	if color.Valid {
		category.Color = color.String
	}
	return category, nil
}
