package handler

import (
	"errors"
	"time"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/i18n"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"
	ucauth "wow-campus/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc        usecase.AuthUsecase
	cookieTTL time.Duration
	secure    bool
}

func NewAuthHandler(uc usecase.AuthUsecase, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieTTL: cookieTTL, secure: secureCookie}
}

// RegisterRoutes mounts the public endpoints; authed and limited are applied
// per route so the group stays usable without a token.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, authed fiber.Handler, limited fiber.Handler) {
	if r == nil {
		return
	}

	authed, limited = orNext(authed), orNext(limited)

	r.Post("/register", limited, h.Register)
	r.Post("/login", limited, h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)
	r.Get("/profile", authed, h.Profile)
	r.Put("/profile", authed, h.UpdateProfile)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
		UserType:        req.UserType,
		Phone:           req.Phone,
		Location:        req.Location,
	})
	if err != nil {
		return mapAuthUsecaseError(c, err)
	}

	h.setTokenCookie(c, res.AccessToken)
	return response.Created(c, "회원가입이 완료되었습니다.", dto.AuthResponse{
		User:         dto.NewUserResponse(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(c, err)
	}

	h.setTokenCookie(c, res.AccessToken)
	return response.Success(c, fiber.StatusOK, "로그인되었습니다.", dto.AuthResponse{
		User:         dto.NewUserResponse(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// Refresh takes the refresh token as a Bearer header or in the JSON body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if len(c.Body()) > 0 {
			_ = c.Bind().Body(&body)
		}
		tok = body.RefreshToken
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.Localizer(c).T(i18n.KeyUnauthorized), nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		return mapAuthUsecaseError(c, err)
	}

	h.setTokenCookie(c, access)
	return response.OK(c, dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return response.Success(c, fiber.StatusOK, "로그아웃되었습니다.", nil)
}

func (h *AuthHandler) Profile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	usr, err := h.uc.Profile(c.Context(), actor.UserID)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewUserResponse(usr))
}

func (h *AuthHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	usr, err := h.uc.UpdateProfile(c.Context(), actor.UserID, req.Name, req.Phone)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewUserResponse(usr))
}

func (h *AuthHandler) setTokenCookie(c fiber.Ctx, token string) {
	if token == "" || h.cookieTTL <= 0 {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapAuthUsecaseError(c fiber.Ctx, err error) error {
	loc := middleware.Localizer(c)

	var inErr *ucauth.InputError
	switch {
	case errors.As(err, &inErr):
		return middleware.NewAppError(fiber.StatusBadRequest, inErr.Message, nil, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, loc.T(i18n.KeyEmailRegistered), nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, loc.T(i18n.KeyInvalidCredentials), nil, err)
	case errors.Is(err, ucauth.ErrAccountPending),
		errors.Is(err, ucauth.ErrAccountSuspended),
		errors.Is(err, ucauth.ErrAccountRejected):
		return middleware.NewAppError(fiber.StatusForbidden, loc.T(i18n.KeyAccountNotApproved), map[string]string{"reason": err.Error()}, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return mapUsecaseError(c, err)
	}
}
