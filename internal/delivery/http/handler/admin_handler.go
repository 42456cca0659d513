package handler

import (
	"strings"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	admin usecase.AdminUsecase
	stats usecase.StatisticsUsecase
}

func NewAdminHandler(admin usecase.AdminUsecase, stats usecase.StatisticsUsecase) *AdminHandler {
	return &AdminHandler{admin: admin, stats: stats}
}

// RegisterRoutes mounts /api/admin; the group must be admin-only.
func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users", h.ListUsers)
	r.Get("/users/pending", h.ListPending)
	r.Post("/users/:id/approve", h.setStatus(user.StatusApproved, "사용자가 승인되었습니다."))
	r.Post("/users/:id/reject", h.setStatus(user.StatusRejected, "사용자가 거절되었습니다."))
	r.Post("/users/:id/suspend", h.setStatus(user.StatusSuspended, "사용자가 정지되었습니다."))
	r.Post("/users/:id/activate", h.setStatus(user.StatusApproved, "사용자가 활성화되었습니다."))
	r.Post("/users/:id/reset-password", h.ResetPassword)
	r.Get("/statistics", h.Statistics)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	var f user.ListFilter
	if s := strings.TrimSpace(c.Query("user_type")); s != "" {
		t, ok := user.ParseType(s)
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user_type", nil, nil)
		}
		f.UserType = t
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st, ok := user.ParseStatus(s)
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
		}
		f.Status = st
	}
	f.Keyword = strings.TrimSpace(c.Query("keyword"))
	return h.list(c, f)
}

func (h *AdminHandler) ListPending(c fiber.Ctx) error {
	return h.list(c, user.ListFilter{Status: user.StatusPending})
}

func (h *AdminHandler) list(c fiber.Ctx, f user.ListFilter) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.admin.ListUsers(c.Context(), f, p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewUserResponses))
}

func (h *AdminHandler) setStatus(status user.Status, msg string) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor, err := actorFrom(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c, "id")
		if err != nil {
			return err
		}

		u, err := h.admin.SetStatus(c.Context(), actor, id, status)
		if err != nil {
			return mapUsecaseError(c, err)
		}
		return response.Success(c, fiber.StatusOK, msg, dto.NewUserResponse(u))
	}
}

func (h *AdminHandler) ResetPassword(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	temp, err := h.admin.ResetPassword(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "임시 비밀번호가 발급되었습니다.", fiber.Map{
		"user_id":            id,
		"temporary_password": temp,
	})
}

func (h *AdminHandler) Statistics(c fiber.Ctx) error {
	out, err := h.stats.Overview(c.Context())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, out)
}
