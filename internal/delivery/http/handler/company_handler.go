package handler

import (
	"strings"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// RegisterAdminRoutes mounts /api/companies; the group must be admin-only.
func (h *CompanyHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

// RegisterProfileRoutes mounts /api/profile/company for company accounts.
func (h *CompanyHandler) RegisterProfileRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Mine)
	r.Put("/", h.UpdateMine)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.uc.List(c.Context(), strings.TrimSpace(c.Query("keyword")), p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewCompanyResponses))
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), usecase.NewCompanyInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.ContactName,
		Phone:    req.Phone,
		Company:  req.Company(),
	})
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Created(c, "기업이 등록되었습니다.", dto.NewCompanyResponse(created))
}

func (h *CompanyHandler) Mine(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	co, err := h.uc.Mine(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) UpdateMine(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CompanyPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.UpdateMine(c.Context(), actor, req.Patch())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "기업 정보가 업데이트되었습니다.", dto.NewCompanyResponse(co))
}
