package middleware

import (
	"context"
	"errors"
	"slices"
	"strings"

	"wow-campus/internal/domain/permission"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/i18n"
	"wow-campus/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxPrincipalKey = "principal"
	TokenCookieName = "wowcampus_token"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID int64
	Email  string
	Type   user.Type
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type AuthMiddleware struct {
	jwt   jwt.Service
	users UserLookup
}

func NewAuthMiddleware(jwtSvc jwt.Service, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

// Middleware requires a valid access token for an account that still exists
// and is approved.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := tokenFromRequest(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, Localizer(c).T(i18n.KeyUnauthorized), nil, nil)
		}

		p, err := m.authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid or expired token", nil, err)
		}

		c.Locals(CtxPrincipalKey, p)
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a usable token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := tokenFromRequest(c); ok {
			if p, err := m.authenticate(c.Context(), token); err == nil {
				c.Locals(CtxPrincipalKey, p)
			}
		}
		return c.Next()
	}
}

var errNotApproved = errors.New("user not found or not approved")

func (m *AuthMiddleware) authenticate(ctx context.Context, token string) (Principal, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return Principal{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return Principal{}, jwt.ErrTokenInvalid
	}

	p := Principal{UserID: claims.UserID, Email: claims.Email, Type: user.Type(claims.UserType)}
	if m.users == nil {
		return p, nil
	}

	usr, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil || usr.Status != user.StatusApproved {
		return Principal{}, errNotApproved
	}
	p.Email, p.Type = usr.Email, usr.UserType
	return p, nil
}

// RequireRole must run after Middleware. Admins always pass.
func RequireRole(types ...user.Type) fiber.Handler {
	return func(c fiber.Ctx) error {
		p, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, Localizer(c).T(i18n.KeyUnauthorized), nil, nil)
		}
		if p.Type == user.TypeAdmin || slices.Contains(types, p.Type) {
			return c.Next()
		}
		return NewAppError(fiber.StatusForbidden, Localizer(c).T(i18n.KeyForbidden), nil, nil)
	}
}

// RequireAction checks the permission matrix; anonymous callers are guests.
func RequireAction(action permission.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		role := permission.RoleGuest
		if p, ok := CurrentUser(c); ok {
			role = permission.RoleOf(p.Type)
		}
		if permission.CanPerformAction(role, action) {
			return c.Next()
		}
		if role == permission.RoleGuest {
			return NewAppError(fiber.StatusUnauthorized, Localizer(c).T(i18n.KeyUnauthorized), nil, nil)
		}
		return NewAppError(fiber.StatusForbidden, Localizer(c).T(i18n.KeyForbidden), nil, nil)
	}
}

func CurrentUser(c fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(CtxPrincipalKey).(Principal)
	return p, ok
}

func tokenFromRequest(c fiber.Ctx) (string, bool) {
	if tok, ok := BearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		return tok, true
	}
	if tok := strings.TrimSpace(c.Cookies(TokenCookieName)); tok != "" {
		return tok, true
	}
	return "", false
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
