package category

import (
	"context"
	"errors"
	"regexp"
)

var (
	ErrInvalidName  = errors.New("category name must be between 1 and 50 characters")
	ErrInvalidType  = errors.New("category type must be either income or expense")
	ErrInvalidColor = errors.New("category color must be a hex code like #FF0000")
)

const (
	defaultIcon  = "💰"
	defaultColor = "#6B7280"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewCategoryService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	if len(category.Name) < 1 || len(category.Name) > 50 {
		return Category{}, ErrInvalidName
	}
	if category.Type != TypeIncome && category.Type != TypeExpense {
		return Category{}, ErrInvalidType
	}
	if category.Color != "" && !hexColorPattern.MatchString(category.Color) {
		return Category{}, ErrInvalidColor
	}

	if category.Icon == "" {
		category.Icon = defaultIcon
	}
	if category.Color == "" {
		category.Color = defaultColor
	}
	category.IsDefault = false

	id, err := s.repo.Store(ctx, category)
	if err != nil {
		return Category{}, err
	}
	category.ID = id
	return category, nil
}
