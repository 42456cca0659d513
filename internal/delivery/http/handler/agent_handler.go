package handler

import (
	"strings"
	"time"

	"wow-campus/internal/delivery/http/dto"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/domain/agent"
	"wow-campus/internal/pkg/response"
	"wow-campus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AgentHandler struct {
	uc usecase.AgentUsecase
}

func NewAgentHandler(uc usecase.AgentUsecase) *AgentHandler {
	return &AgentHandler{uc: uc}
}

// RegisterRoutes mounts /api/agents. The directory is public; agent-scoped
// paths are registered before /:id so they are not shadowed.
func (h *AgentHandler) RegisterRoutes(r fiber.Router, optional, authed, adminOnly, agentOnly fiber.Handler) {
	if r == nil {
		return
	}
	optional, authed = orNext(optional), orNext(authed)
	adminOnly, agentOnly = orNext(adminOnly), orNext(agentOnly)

	r.Get("/", optional, h.List)

	r.Get("/profile", authed, agentOnly, h.Profile)
	r.Put("/profile", authed, agentOnly, h.UpdateProfile)
	r.Get("/stats", authed, agentOnly, h.Stats)
	r.Get("/jobseekers", authed, agentOnly, h.Assigned)
	r.Get("/available-jobseekers", authed, agentOnly, h.Available)
	r.Post("/jobseekers/:jobseekerId/assign", authed, agentOnly, h.Assign)
	r.Delete("/jobseekers/:jobseekerId/unassign", authed, agentOnly, h.Unassign)
	r.Patch("/jobseekers/:jobseekerId/assignment", authed, agentOnly, h.UpdateAssignment)

	r.Post("/", authed, adminOnly, h.Create)
	r.Put("/:id", authed, adminOnly, h.Update)
	r.Delete("/:id", authed, adminOnly, h.Delete)
}

func (h *AgentHandler) List(c fiber.Ctx) error {
	var actor usecase.Actor
	if a := optionalActor(c); a != nil {
		actor = *a
	}
	items, err := h.uc.List(c.Context(), actor, agent.ListFilter{
		Status:         strings.TrimSpace(c.Query("status")),
		Specialization: strings.TrimSpace(c.Query("specialization")),
	})
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewAgentResponses(items))
}

func (h *AgentHandler) Create(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateAgentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, temp, err := h.uc.Create(c.Context(), actor, usecase.NewAgentInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.ContactName,
		Phone:    req.Phone,
		Agent:    req.Agent(),
	})
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Created(c, "에이전트가 등록되었습니다.", dto.CreatedAgentResponse{
		Agent:             dto.NewAgentResponse(created),
		TemporaryPassword: temp,
	})
}

func (h *AgentHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AgentPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Update(c.Context(), actor, id, req.Patch())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "에이전트 정보가 업데이트되었습니다.", dto.NewAgentResponse(a))
}

func (h *AgentHandler) Delete(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "에이전트가 삭제되었습니다.", nil)
}

func (h *AgentHandler) Profile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	a, err := h.uc.Profile(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewAgentResponse(a))
}

func (h *AgentHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.AgentPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	a, err := h.uc.UpdateProfile(c.Context(), actor, req.Patch())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "프로필이 업데이트되었습니다.", dto.NewAgentResponse(a))
}

func (h *AgentHandler) Stats(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	s, err := h.uc.Stats(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.NewAgentStatsResponse(s))
}

func (h *AgentHandler) Assigned(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Assigned(c.Context(), actor, c.Query("status"), p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewAssignmentResponses))
}

func (h *AgentHandler) Available(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.uc.Available(c.Context(), actor, c.Query("search"), p)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.OK(c, dto.MapPage(page, dto.NewJobseekerResponses))
}

func (h *AgentHandler) Assign(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobseekerID, err := parseIDParam(c, "jobseekerId")
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	a, reactivated, err := h.uc.Assign(c.Context(), actor, jobseekerID, req.Notes)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	if reactivated {
		return response.Success(c, fiber.StatusOK, "구직자 배정이 재활성화되었습니다.", dto.NewAssignmentResponse(a))
	}
	return response.Created(c, "구직자가 배정되었습니다.", dto.NewAssignmentResponse(a))
}

func (h *AgentHandler) Unassign(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobseekerID, err := parseIDParam(c, "jobseekerId")
	if err != nil {
		return err
	}
	if err := h.uc.Unassign(c.Context(), actor, jobseekerID); err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "구직자 배정이 해제되었습니다.", nil)
}

func (h *AgentHandler) UpdateAssignment(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobseekerID, err := parseIDParam(c, "jobseekerId")
	if err != nil {
		return err
	}
	var req dto.AssignmentPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	patch := agent.AssignmentPatch{Notes: req.Notes, CommissionEarned: req.CommissionEarned}
	if req.Status != nil {
		st, ok := agent.ParseAssignmentStatus(*req.Status)
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
		}
		patch.Status = &st
	}
	if req.PlacementDate != nil {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(*req.PlacementDate))
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid placement_date", nil, err)
		}
		patch.PlacementDate = &d
	}

	a, err := h.uc.UpdateAssignment(c.Context(), actor, jobseekerID, patch)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, "배정 정보가 업데이트되었습니다.", dto.NewAssignmentResponse(a))
}
