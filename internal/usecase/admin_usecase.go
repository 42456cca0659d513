package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"wow-campus/internal/domain/user"
	ucauth "wow-campus/internal/usecase/auth"

	"go.uber.org/zap"
)

const tempPasswordLen = 12

// Letters and digits without look-alikes (0/O, 1/l/I).
const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type AdminUsecase interface {
	ListUsers(ctx context.Context, f user.ListFilter, p PageRequest) (Page[user.User], error)
	SetStatus(ctx context.Context, actor Actor, userID int64, status user.Status) (user.User, error)
	ResetPassword(ctx context.Context, actor Actor, userID int64) (string, error)
}

type Admin struct {
	users       user.Repository
	invalidator Invalidator
	logger      *zap.Logger

	generate func() (string, error)
}

// NewAdminUsecase builds the admin usecase. invalidator may be nil; when set
// it is called after every status change, since matching only considers
// approved accounts.
func NewAdminUsecase(users user.Repository, invalidator Invalidator, logger *zap.Logger) *Admin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Admin{users: users, invalidator: invalidator, logger: logger, generate: generateTempPassword}
}

func (u *Admin) ListUsers(ctx context.Context, f user.ListFilter, p PageRequest) (Page[user.User], error) {
	page, limit, offset := p.normalize()
	f.Limit, f.Offset = limit, offset

	items, total, err := u.users.List(ctx, f)
	if err != nil {
		u.logger.Error("list users", zap.Error(err))
		return Page[user.User]{}, ErrInternal
	}
	for i := range items {
		items[i].PasswordHash = ""
	}
	return newPage(items, total, page, limit), nil
}

// SetStatus approves, rejects, suspends or reactivates an account. Admins
// cannot change their own status.
func (u *Admin) SetStatus(ctx context.Context, actor Actor, userID int64, status user.Status) (user.User, error) {
	if !actor.IsAdmin() {
		return user.User{}, ErrForbidden
	}
	if actor.UserID == userID {
		return user.User{}, invalid("cannot change your own status")
	}
	if _, ok := user.ParseStatus(string(status)); !ok {
		return user.User{}, invalid("invalid status")
	}

	if err := u.users.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		u.logger.Error("update user status", zap.Int64("user_id", userID), zap.Error(err))
		return user.User{}, ErrInternal
	}
	u.logger.Info("user status changed",
		zap.Int64("user_id", userID), zap.String("status", string(status)), zap.Int64("by", actor.UserID))
	if u.invalidator != nil {
		u.invalidator.Invalidate(ctx)
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}

// ResetPassword sets a random temporary password and returns it once.
func (u *Admin) ResetPassword(ctx context.Context, actor Actor, userID int64) (string, error) {
	if !actor.IsAdmin() {
		return "", ErrForbidden
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternal
	}

	pw, err := u.generate()
	if err != nil {
		return "", ErrInternal
	}
	hash, err := ucauth.HashPassword(pw, 0)
	if err != nil {
		return "", ErrInternal
	}
	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternal
	}
	u.logger.Info("temporary password issued", zap.Int64("user_id", userID), zap.Int64("by", actor.UserID))
	return pw, nil
}

func generateTempPassword() (string, error) {
	n := big.NewInt(int64(len(tempPasswordAlphabet)))
	b := make([]byte, tempPasswordLen)
	for i := range b {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		b[i] = tempPasswordAlphabet[idx.Int64()]
	}
	return string(b), nil
}
