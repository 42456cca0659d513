package usecase

import (
	"context"
	"errors"

	"wow-campus/internal/domain/user"
	"wow-campus/internal/pkg/jwt"
	ucauth "wow-campus/internal/usecase/auth"
)

type AuthResult struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Profile(ctx context.Context, userID int64) (user.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, phone *string) (user.User, error)
}

type Auth struct {
	authSvc     *ucauth.Service
	users       user.Repository
	jwt         jwt.Service
	invalidator Invalidator
}

// NewAuthUsecase builds the auth usecase. invalidator may be nil.
func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, invalidator Invalidator) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc, invalidator: invalidator}
}

// Register creates an approved account. A new jobseeker is immediately a
// matching candidate, so cached match results are dropped.
func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	if usr.UserType == user.TypeJobseeker && u.invalidator != nil {
		u.invalidator.Invalidate(ctx)
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(jwt.Subject{UserID: usr.ID, Email: usr.Email, UserType: string(usr.UserType)})
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new pair. The account must still
// exist and be approved.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}
	if err := ucauth.CheckStatus(usr.Status); err != nil {
		return "", "", err
	}

	res, err := u.issue(usr)
	if err != nil {
		return "", "", err
	}
	return res.AccessToken, res.RefreshToken, nil
}

func (u *Auth) Profile(ctx context.Context, userID int64) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}

func (u *Auth) UpdateProfile(ctx context.Context, userID int64, name, phone *string) (user.User, error) {
	if name != nil && len([]rune(trim(*name))) == 0 {
		return user.User{}, invalid("이름은 필수 입력 항목입니다.")
	}
	if name != nil && len([]rune(trim(*name))) > 100 {
		return user.User{}, invalid("이름은 100자 이하여야 합니다.")
	}

	usr, err := u.users.UpdateProfile(ctx, userID, name, phone)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}
