package handler

import (
	"strings"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobseekersHandler struct {
	uc usecase.JobseekerUsecase
}

func NewJobseekersHandler(uc usecase.JobseekerUsecase) *JobseekersHandler {
	return &JobseekersHandler{uc: uc}
}

// RegisterRoutes expects an authenticated group.
func (h *JobseekersHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
}

func (h *JobseekersHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	p, err := pageRequest(c)
	if err != nil {
		return err
	}

	f := jobseeker.SearchFilter{
		Nationality: strings.TrimSpace(c.Query("nationality")),
		VisaStatus:  strings.TrimSpace(c.Query("visa_status")),
		KoreanLevel: strings.TrimSpace(c.Query("korean_level")),
		Keyword:     strings.TrimSpace(c.Query("keyword")),
	}
	page, err := h.uc.Search(c.Context(), actor, f, p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewJobseekerResponses))
}

func (h *JobseekersHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewJobseekerResponse(p))
}

func (h *JobseekersHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobseekerPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Update(c.Context(), actor, id, req.Patch())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "프로필이 업데이트되었습니다.", dto.NewJobseekerResponse(p))
}
