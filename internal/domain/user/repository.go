package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidState = errors.New("invalid user state")
)

type Repository interface {
	CreateWithProfile(ctx context.Context, u User, seed ProfileSeed) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateProfile(ctx context.Context, id int64, name, phone *string) (User, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	List(ctx context.Context, f ListFilter) ([]User, int, error)
}
