package user

import "time"

type User struct {
	ID           int
	Uid          string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
