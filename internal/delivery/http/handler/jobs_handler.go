package handler

import (
	"strings"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/domain/job"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes mounts /api/jobs. optional attaches the caller when a token
// is present; authed and manager guard the write endpoints.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, optional, authed, manager fiber.Handler) {
	if r == nil {
		return
	}
	optional, authed, manager = orNext(optional), orNext(authed), orNext(manager)

	r.Get("/", h.List)
	r.Get("/company/:companyId", h.ListByCompany)
	r.Get("/:id", optional, h.Get)
	r.Post("/", authed, manager, h.Create)
	r.Put("/:id", authed, manager, h.Update)
	r.Delete("/:id", authed, manager, h.Close)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	salaryMin, err := parseQueryInt64Ptr(c, "salary_min")
	if err != nil {
		return err
	}
	salaryMax, err := parseQueryInt64Ptr(c, "salary_max")
	if err != nil {
		return err
	}
	visa, err := parseQueryBoolPtr(c, "visa_sponsorship")
	if err != nil {
		return err
	}

	f := job.SearchFilter{
		Keyword:         strings.TrimSpace(c.Query("keyword")),
		Location:        strings.TrimSpace(c.Query("location")),
		JobCategory:     strings.TrimSpace(c.Query("job_category")),
		JobType:         job.Type(strings.TrimSpace(c.Query("job_type"))),
		ExperienceLevel: strings.TrimSpace(c.Query("experience_level")),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		VisaSponsorship: visa,
		Sort:            c.Query("sort"),
		Order:           c.Query("order"),
	}

	page, err := h.uc.Search(c.Context(), f, p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewJobResponses))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	d, err := h.uc.Get(c.Context(), id, optionalActor(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}

	out := dto.NewJobResponse(d.Posting)
	out.HasApplied = &d.HasApplied
	return response.OK(c, out)
}

func (h *JobsHandler) ListByCompany(c fiber.Ctx) error {
	companyID, err := parseIDParam(c, "companyId")
	if err != nil {
		return err
	}
	p, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.uc.ListByCompany(c.Context(), companyID, c.Query("status"), p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewJobResponses))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), actor, req.Posting())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Created(c, "구인공고가 등록되었습니다.", dto.NewJobResponse(created))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.Update(c.Context(), actor, id, req.Patch())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewJobResponse(updated))
}

func (h *JobsHandler) Close(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Close(c.Context(), actor, id); err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "구인공고가 마감되었습니다.", fiber.Map{"id": id, "status": job.StatusClosed})
}
