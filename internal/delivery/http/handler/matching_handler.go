package handler

import (
	"errors"

	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/i18n"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchingHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchingHandler(uc usecase.MatchingUsecase) *MatchingHandler {
	return &MatchingHandler{uc: uc}
}

// RegisterRoutes mounts /api/matching. The endpoints are public.
func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:jobseekerId", h.JobsForSeeker)
	r.Get("/jobseekers/:jobId", h.SeekersForJob)
	r.Get("/statistics", h.Statistics)
}

func (h *MatchingHandler) JobsForSeeker(c fiber.Ctx) error {
	id, err := parseIDParam(c, "jobseekerId")
	if err != nil {
		return err
	}
	loc := middleware.Localizer(c)

	out, err := h.uc.MatchJobsForSeeker(c.Context(), id, loc)
	if err != nil {
		return matchingError(c, err)
	}

	msg := response.MessageOK
	if out.Candidates == 0 {
		msg = loc.T(i18n.KeyNoActiveJobs)
	}
	return response.Success(c, fiber.StatusOK, msg, out)
}

func (h *MatchingHandler) SeekersForJob(c fiber.Ctx) error {
	id, err := parseIDParam(c, "jobId")
	if err != nil {
		return err
	}
	loc := middleware.Localizer(c)

	out, err := h.uc.MatchSeekersForJob(c.Context(), id, loc)
	if err != nil {
		return matchingError(c, err)
	}

	msg := response.MessageOK
	if out.Candidates == 0 {
		msg = loc.T(i18n.KeyNoJobseekers)
	}
	return response.Success(c, fiber.StatusOK, msg, out)
}

func (h *MatchingHandler) Statistics(c fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context())
	if err != nil {
		return middleware.NewPublicError(fiber.StatusInternalServerError, middleware.Localizer(c).T(i18n.KeyStatisticsFailed), err)
	}
	return response.OK(c, stats)
}

func matchingError(c fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrJobNotFound) || errors.Is(err, usecase.ErrJobseekerNotFound) {
		return mapUsecaseError(c, err)
	}
	return middleware.NewPublicError(fiber.StatusInternalServerError, middleware.Localizer(c).T(i18n.KeyMatchingFailed), err)
}
