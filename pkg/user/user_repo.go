package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repo interface {
	Store(ctx context.Context, user User) (int, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByUid(ctx context.Context, uid string) (User, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const dateTimeLayout = "2006-01-02 15:04:05"

func (r *RepoImpl) Store(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO user (uid, username, email, password_hash) VALUES (?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, user.Uid, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			if strings.Contains(err.Error(), "user.email") {
				return 0, ErrEmailTaken
			}
			return 0, ErrUsernameTaken
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

func (r *RepoImpl) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, uid, username, email, password_hash, created_at FROM user WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *RepoImpl) FindByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, email, password_hash, created_at FROM user WHERE uid = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, uid))
}

func (r *RepoImpl) scanOne(row *sql.Row) (User, error) {
	var user User
	var createdAt string
	err := row.Scan(&user.ID, &user.Uid, &user.Username, &user.Email, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	if ts, err := time.Parse(dateTimeLayout, createdAt); err == nil {
		user.CreatedAt = ts
	}
	return user, nil
}
