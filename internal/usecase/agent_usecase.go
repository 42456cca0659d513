package usecase

import (
	"context"
	"errors"
	"strings"

	"wow-campus/internal/domain/agent"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"
	ucauth "wow-campus/internal/usecase/auth"

	"go.uber.org/zap"
)

type NewAgentInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Agent    agent.Agent
}

type AgentUsecase interface {
	List(ctx context.Context, actor Actor, f agent.ListFilter) ([]agent.Agent, error)
	Create(ctx context.Context, actor Actor, in NewAgentInput) (agent.Agent, string, error)
	Update(ctx context.Context, actor Actor, id int64, p agent.Patch) (agent.Agent, error)
	Delete(ctx context.Context, actor Actor, id int64) error

	Profile(ctx context.Context, actor Actor) (agent.Agent, error)
	UpdateProfile(ctx context.Context, actor Actor, p agent.Patch) (agent.Agent, error)
	Stats(ctx context.Context, actor Actor) (agent.Stats, error)

	Assigned(ctx context.Context, actor Actor, status string, p PageRequest) (Page[agent.Assignment], error)
	Available(ctx context.Context, actor Actor, query string, p PageRequest) (Page[jobseeker.Profile], error)
	Assign(ctx context.Context, actor Actor, jobseekerID int64, notes string) (agent.Assignment, bool, error)
	Unassign(ctx context.Context, actor Actor, jobseekerID int64) error
	UpdateAssignment(ctx context.Context, actor Actor, jobseekerID int64, p agent.AssignmentPatch) (agent.Assignment, error)
}

type Agents struct {
	agents     repository.AgentRepository
	jobseekers repository.JobseekerRepository
	logger     *zap.Logger

	generate func() (string, error)
}

func NewAgentUsecase(agents repository.AgentRepository, jobseekers repository.JobseekerRepository, logger *zap.Logger) *Agents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agents{agents: agents, jobseekers: jobseekers, logger: logger, generate: generateTempPassword}
}

// List shows approved agents to everyone. Admins may filter by any status.
func (u *Agents) List(ctx context.Context, actor Actor, f agent.ListFilter) ([]agent.Agent, error) {
	if !actor.IsAdmin() {
		f.Status = string(user.StatusApproved)
	} else if st := trim(f.Status); st != "" && st != "all" {
		if _, ok := user.ParseStatus(st); !ok {
			return nil, invalid("invalid status")
		}
	}
	items, err := u.agents.List(ctx, f)
	if err != nil {
		u.logger.Error("list agents", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// Create onboards an agency as admin. The account is created approved; when
// no password is given a temporary one is generated and returned.
func (u *Agents) Create(ctx context.Context, actor Actor, in NewAgentInput) (agent.Agent, string, error) {
	if !actor.IsAdmin() {
		return agent.Agent{}, "", ErrForbidden
	}
	email := strings.ToLower(trim(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return agent.Agent{}, "", invalid("올바른 이메일 형식을 입력해주세요.")
	}
	a := in.Agent
	a.AgencyName = trim(a.AgencyName)
	if a.AgencyName == "" {
		return agent.Agent{}, "", invalid("에이전시명은 필수입니다.")
	}
	if a.CommissionRate == 0 {
		a.CommissionRate = agent.DefaultCommissionRate
	}
	if err := validateAgentFields(&a.CommissionRate, &a.ExperienceYears); err != nil {
		return agent.Agent{}, "", err
	}

	password, temp := in.Password, ""
	if password == "" {
		generated, err := u.generate()
		if err != nil {
			u.logger.Error("generate agent password", zap.Error(err))
			return agent.Agent{}, "", ErrInternal
		}
		password, temp = generated, generated
	} else if len(password) < 6 {
		return agent.Agent{}, "", invalid("비밀번호는 최소 6자 이상이어야 합니다.")
	}

	hash, err := ucauth.HashPassword(password, 0)
	if err != nil {
		return agent.Agent{}, "", ErrInternal
	}
	name := trim(in.Name)
	if name == "" {
		name = a.AgencyName
	}

	created, err := u.agents.CreateWithUser(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     user.TypeAgent,
		Status:       user.StatusApproved,
		Name:         name,
		Phone:        trim(in.Phone),
	}, a)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return agent.Agent{}, "", ErrConflict
		}
		u.logger.Error("create agent", zap.String("email", email), zap.Error(err))
		return agent.Agent{}, "", ErrInternal
	}
	u.logger.Info("agent created", zap.Int64("agent_id", created.ID), zap.Int64("by", actor.UserID))
	return created, temp, nil
}

func (u *Agents) Update(ctx context.Context, actor Actor, id int64, p agent.Patch) (agent.Agent, error) {
	if !actor.IsAdmin() {
		return agent.Agent{}, ErrForbidden
	}
	if p.UserStatus != nil {
		if _, ok := user.ParseStatus(*p.UserStatus); !ok {
			return agent.Agent{}, invalid("invalid status")
		}
	}
	return u.update(ctx, id, p)
}

func (u *Agents) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := u.agents.Delete(ctx, id); err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			return ErrAgentNotFound
		}
		u.logger.Error("delete agent", zap.Int64("agent_id", id), zap.Error(err))
		return ErrInternal
	}
	u.logger.Info("agent deleted", zap.Int64("agent_id", id), zap.Int64("by", actor.UserID))
	return nil
}

func (u *Agents) Profile(ctx context.Context, actor Actor) (agent.Agent, error) {
	if actor.Type != user.TypeAgent {
		return agent.Agent{}, ErrForbidden
	}
	a, err := u.agents.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			return agent.Agent{}, ErrAgentNotFound
		}
		u.logger.Error("get agent profile", zap.Int64("user_id", actor.UserID), zap.Error(err))
		return agent.Agent{}, ErrInternal
	}
	return a, nil
}

// UpdateProfile lets an agent edit its own agency. Account status is not
// self-service.
func (u *Agents) UpdateProfile(ctx context.Context, actor Actor, p agent.Patch) (agent.Agent, error) {
	a, err := u.Profile(ctx, actor)
	if err != nil {
		return agent.Agent{}, err
	}
	p.UserStatus = nil
	return u.update(ctx, a.ID, p)
}

func (u *Agents) update(ctx context.Context, id int64, p agent.Patch) (agent.Agent, error) {
	if p.AgencyName != nil && trim(*p.AgencyName) == "" {
		return agent.Agent{}, invalid("에이전시명은 필수입니다.")
	}
	if p.ContactName != nil && trim(*p.ContactName) == "" {
		return agent.Agent{}, invalid("name must not be empty")
	}
	if err := validateAgentFields(p.CommissionRate, p.ExperienceYears); err != nil {
		return agent.Agent{}, err
	}
	updated, err := u.agents.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			return agent.Agent{}, ErrAgentNotFound
		}
		u.logger.Error("update agent", zap.Int64("agent_id", id), zap.Error(err))
		return agent.Agent{}, ErrInternal
	}
	return updated, nil
}

func (u *Agents) Stats(ctx context.Context, actor Actor) (agent.Stats, error) {
	a, err := u.Profile(ctx, actor)
	if err != nil {
		return agent.Stats{}, err
	}
	s, err := u.agents.Stats(ctx, a.ID)
	if err != nil {
		u.logger.Error("agent stats", zap.Int64("agent_id", a.ID), zap.Error(err))
		return agent.Stats{}, ErrInternal
	}
	return s, nil
}

func (u *Agents) Assigned(ctx context.Context, actor Actor, status string, p PageRequest) (Page[agent.Assignment], error) {
	a, err := u.Profile(ctx, actor)
	if err != nil {
		return Page[agent.Assignment]{}, err
	}
	status = strings.ToLower(trim(status))
	if status == "" {
		status = string(agent.AssignmentActive)
	} else if status != "all" {
		if _, ok := agent.ParseAssignmentStatus(status); !ok {
			return Page[agent.Assignment]{}, invalid("invalid status")
		}
	}

	page, limit, offset := p.normalize()
	items, total, err := u.agents.ListAssignments(ctx, a.ID, status, limit, offset)
	if err != nil {
		u.logger.Error("list assignments", zap.Int64("agent_id", a.ID), zap.Error(err))
		return Page[agent.Assignment]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

func (u *Agents) Available(ctx context.Context, actor Actor, query string, p PageRequest) (Page[jobseeker.Profile], error) {
	if _, err := u.Profile(ctx, actor); err != nil {
		return Page[jobseeker.Profile]{}, err
	}
	page, limit, offset := p.normalize()
	items, total, err := u.agents.ListAvailable(ctx, trim(query), limit, offset)
	if err != nil {
		u.logger.Error("list available jobseekers", zap.Error(err))
		return Page[jobseeker.Profile]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

// Assign takes an approved jobseeker under the agent. A previous inactive or
// completed assignment with the same agent is reactivated; the bool reports
// that case. A jobseeker has at most one active agent.
func (u *Agents) Assign(ctx context.Context, actor Actor, jobseekerID int64, notes string) (agent.Assignment, bool, error) {
	a, err := u.Profile(ctx, actor)
	if err != nil {
		return agent.Assignment{}, false, err
	}
	js, err := u.jobseekers.GetByID(ctx, jobseekerID)
	if err != nil {
		if errors.Is(err, jobseeker.ErrNotFound) {
			return agent.Assignment{}, false, ErrJobseekerNotFound
		}
		u.logger.Error("get jobseeker", zap.Int64("jobseeker_id", jobseekerID), zap.Error(err))
		return agent.Assignment{}, false, ErrInternal
	}
	if js.UserStatus != string(user.StatusApproved) {
		return agent.Assignment{}, false, invalid("승인된 구직자만 배정할 수 있습니다.")
	}

	existing, err := u.agents.GetAssignment(ctx, a.ID, jobseekerID)
	switch {
	case err == nil:
		if existing.Status == agent.AssignmentActive {
			return agent.Assignment{}, false, invalid("이미 배정된 구직자입니다.")
		}
		out, err := u.agents.ReactivateAssignment(ctx, existing.ID, trim(notes))
		if err != nil {
			return agent.Assignment{}, false, u.assignmentError("reactivate assignment", a.ID, jobseekerID, err)
		}
		u.logger.Info("assignment reactivated", zap.Int64("agent_id", a.ID), zap.Int64("jobseeker_id", jobseekerID))
		return out, true, nil
	case !errors.Is(err, agent.ErrAssignmentNotFound):
		u.logger.Error("get assignment", zap.Int64("agent_id", a.ID), zap.Int64("jobseeker_id", jobseekerID), zap.Error(err))
		return agent.Assignment{}, false, ErrInternal
	}

	out, err := u.agents.CreateAssignment(ctx, a.ID, jobseekerID, trim(notes))
	if err != nil {
		return agent.Assignment{}, false, u.assignmentError("create assignment", a.ID, jobseekerID, err)
	}
	u.logger.Info("jobseeker assigned", zap.Int64("agent_id", a.ID), zap.Int64("jobseeker_id", jobseekerID))
	return out, false, nil
}

// Unassign marks the assignment inactive; history is kept.
func (u *Agents) Unassign(ctx context.Context, actor Actor, jobseekerID int64) error {
	inactive := agent.AssignmentInactive
	_, err := u.UpdateAssignment(ctx, actor, jobseekerID, agent.AssignmentPatch{Status: &inactive})
	return err
}

// UpdateAssignment edits notes, status and commission. Moving an assignment to
// completed counts a placement for the agent.
func (u *Agents) UpdateAssignment(ctx context.Context, actor Actor, jobseekerID int64, p agent.AssignmentPatch) (agent.Assignment, error) {
	a, err := u.Profile(ctx, actor)
	if err != nil {
		return agent.Assignment{}, err
	}
	if p.Empty() {
		return agent.Assignment{}, invalid("no fields to update")
	}
	if p.CommissionEarned != nil && *p.CommissionEarned < 0 {
		return agent.Assignment{}, invalid("commission_earned must not be negative")
	}

	current, err := u.agents.GetAssignment(ctx, a.ID, jobseekerID)
	if err != nil {
		if errors.Is(err, agent.ErrAssignmentNotFound) {
			return agent.Assignment{}, ErrAssignmentNotFound
		}
		u.logger.Error("get assignment", zap.Int64("agent_id", a.ID), zap.Int64("jobseeker_id", jobseekerID), zap.Error(err))
		return agent.Assignment{}, ErrInternal
	}

	updated, err := u.agents.UpdateAssignment(ctx, a.ID, jobseekerID, p)
	if err != nil {
		return agent.Assignment{}, u.assignmentError("update assignment", a.ID, jobseekerID, err)
	}

	if updated.Status == agent.AssignmentCompleted && current.Status != agent.AssignmentCompleted {
		if err := u.agents.RecordPlacement(ctx, a.ID); err != nil {
			// The assignment is already saved; placement counters catch up on the next completion.
			u.logger.Warn("record placement", zap.Int64("agent_id", a.ID), zap.Error(err))
		}
	}
	return updated, nil
}

func (u *Agents) assignmentError(op string, agentID, jobseekerID int64, err error) error {
	switch {
	case errors.Is(err, agent.ErrAssignedElsewhere):
		return ErrConflict
	case errors.Is(err, agent.ErrAssignmentNotFound):
		return ErrAssignmentNotFound
	}
	u.logger.Error(op, zap.Int64("agent_id", agentID), zap.Int64("jobseeker_id", jobseekerID), zap.Error(err))
	return ErrInternal
}

func validateAgentFields(rate *float64, years *int) error {
	if rate != nil && (*rate < 0 || *rate > 100) {
		return invalid("commission_rate must be between 0 and 100")
	}
	if years != nil && *years < 0 {
		return invalid("experience_years must not be negative")
	}
	return nil
}
