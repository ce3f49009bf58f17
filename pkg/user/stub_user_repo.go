package user

import (
	"context"
)

type StubUserRepo struct {
	nextID int
	data   map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{nextID: 0, data: map[int]User{}}
}

func (s *StubUserRepo) Store(ctx context.Context, user User) (int, error) {
	for _, existing := range s.data {
		if existing.Email == user.Email {
			return 0, ErrEmailTaken
		}
		if existing.Username == user.Username {
			return 0, ErrUsernameTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.data[user.ID] = user
	return user.ID, nil
}

func (s *StubUserRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	for _, user := range s.data {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) FindByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) Cleanup() {
	s.data = map[int]User{}
}
