package handler

import (
	"errors"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/i18n"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationsHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationsHandler(uc usecase.ApplicationUsecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

// RegisterRoutes expects an authenticated group.
func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Apply)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.UpdateStatus)
}

func (h *ApplicationsHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), actor, usecase.ApplyInput{JobPostingID: req.JobPostingID, CoverLetter: req.CoverLetter})
	if err != nil {
		loc := middleware.Localizer(c)
		switch {
		case errors.Is(err, usecase.ErrConflict):
			return middleware.NewAppError(fiber.StatusConflict, loc.T(i18n.KeyAlreadyApplied), nil, err)
		case errors.Is(err, usecase.ErrForbidden):
			return middleware.NewAppError(fiber.StatusForbidden, loc.T(i18n.KeyOnlyJobseekers), nil, err)
		}
		return mapUsecaseError(c, err)
	}
	return response.Created(c, middleware.Localizer(c).T(i18n.KeyApplySuccess), dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	p, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.uc.List(c.Context(), actor, c.Query("status"), p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewApplicationResponses))
}

func (h *ApplicationsHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplicationStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.UpdateStatus(c.Context(), actor, id, usecase.ReviewInput{
		Status:          req.Status,
		InterviewDate:   req.InterviewDate,
		Feedback:        req.Feedback,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewApplicationResponse(a))
}
