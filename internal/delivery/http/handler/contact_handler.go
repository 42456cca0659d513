package handler

import (
	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/i18n"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// RegisterRoutes mounts /api/contact; limited may be nil.
func (h *ContactHandler) RegisterRoutes(r fiber.Router, limited fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/submit", orNext(limited), h.Submit)
}

func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req dto.ContactRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	loc := middleware.Localizer(c)

	ref, err := h.uc.Submit(c.Context(), usecase.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		RemoteIP: c.IP(),
	}, loc.Locale())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Created(c, loc.T(i18n.KeyContactReceived), fiber.Map{"reference": ref.String()})
}
