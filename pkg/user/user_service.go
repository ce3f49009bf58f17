package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUsername    = errors.New("username must be between 3 and 20 characters")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters long")
)

type Service interface {
	Register(ctx context.Context, username, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
}

type ServiceImpl struct {
	repo   Repo
	tokens *TokenIssuer
}

func NewUserService(repo Repo, tokens *TokenIssuer) *ServiceImpl {
	return &ServiceImpl{repo: repo, tokens: tokens}
}

func (s *ServiceImpl) Register(ctx context.Context, username, email, password string) (User, error) {
	if len(username) < 3 || len(username) > 20 {
		return User{}, ErrInvalidUsername
	}
	if len(password) < 6 {
		return User{}, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("could not hash password: %w", err)
	}

	user := User{
		Uid:          uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	id, err := s.repo.Store(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.ID = id
	return user, nil
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	} else if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.FindByUid(ctx, uid)
}
