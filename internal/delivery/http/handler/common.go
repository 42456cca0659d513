package handler

import (
	"errors"
	"strconv"
	"strings"

	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/domain/application"
	"wow-campus/internal/i18n"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func actorFrom(c fiber.Ctx) (usecase.Actor, error) {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, middleware.Localizer(c).T(i18n.KeyUnauthorized), nil, nil)
	}
	return usecase.Actor{UserID: p.UserID, Type: p.Type}, nil
}

func optionalActor(c fiber.Ctx) *usecase.Actor {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return &usecase.Actor{UserID: p.UserID, Type: p.Type}
}

func parseIDParam(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return n, nil
}

func parseQueryInt64Ptr(c fiber.Ctx, key string) (*int64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return &n, nil
}

func parseQueryBoolPtr(c fiber.Ctx, key string) (*bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return &b, nil
}

func pageRequest(c fiber.Ctx) (usecase.PageRequest, error) {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return usecase.PageRequest{}, err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return usecase.PageRequest{}, err
	}
	return usecase.PageRequest{Page: page, Limit: limit}, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	return nil
}

// mapUsecaseError translates usecase sentinels into HTTP errors. Validation
// errors keep their user-facing message.
func mapUsecaseError(c fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	loc := middleware.Localizer(c)

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, loc.T(i18n.KeyUnauthorized), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, loc.T(i18n.KeyForbidden), nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, loc.T(i18n.KeyJobNotFound), nil, err)
	case errors.Is(err, usecase.ErrJobseekerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, loc.T(i18n.KeyJobseekerNotFound), nil, err)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrAgentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Agent not found", nil, err)
	case errors.Is(err, usecase.ErrAssignmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assignment not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotOpen):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job posting is not open for applications", nil, err)
	case errors.Is(err, usecase.ErrNoJobseekerProfile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Jobseeker profile not found", nil, err)
	case errors.Is(err, application.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageConflict, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func orNext(h fiber.Handler) fiber.Handler {
	if h != nil {
		return h
	}
	return func(c fiber.Ctx) error { return c.Next() }
}
