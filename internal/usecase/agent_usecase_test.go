package usecase

import (
	"context"
	"errors"
	"testing"

	"wow-campus/internal/domain/agent"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/user"
)

type memAgents struct {
	agents      map[int64]agent.Agent
	assignments []agent.Assignment
	placements  map[int64]int
	created     user.User
}

func newMemAgents(items ...agent.Agent) *memAgents {
	m := &memAgents{agents: map[int64]agent.Agent{}, placements: map[int64]int{}}
	for _, a := range items {
		m.agents[a.ID] = a
	}
	return m
}

func (m *memAgents) List(_ context.Context, f agent.ListFilter) ([]agent.Agent, error) {
	out := make([]agent.Agent, 0)
	for _, a := range m.agents {
		if f.Status != "" && f.Status != "all" && a.UserStatus != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memAgents) GetByID(_ context.Context, id int64) (agent.Agent, error) {
	a, ok := m.agents[id]
	if !ok {
		return agent.Agent{}, agent.ErrNotFound
	}
	return a, nil
}

func (m *memAgents) GetByUserID(_ context.Context, userID int64) (agent.Agent, error) {
	for _, a := range m.agents {
		if a.UserID == userID {
			return a, nil
		}
	}
	return agent.Agent{}, agent.ErrNotFound
}

func (m *memAgents) CreateWithUser(_ context.Context, owner user.User, a agent.Agent) (agent.Agent, error) {
	m.created = owner
	a.ID = int64(len(m.agents) + 1)
	a.UserStatus = string(owner.Status)
	m.agents[a.ID] = a
	return a, nil
}

func (m *memAgents) Update(_ context.Context, id int64, p agent.Patch) (agent.Agent, error) {
	a, ok := m.agents[id]
	if !ok {
		return agent.Agent{}, agent.ErrNotFound
	}
	if p.AgencyName != nil {
		a.AgencyName = *p.AgencyName
	}
	if p.CommissionRate != nil {
		a.CommissionRate = *p.CommissionRate
	}
	if p.UserStatus != nil {
		a.UserStatus = *p.UserStatus
	}
	m.agents[id] = a
	return a, nil
}

func (m *memAgents) Delete(_ context.Context, id int64) error {
	if _, ok := m.agents[id]; !ok {
		return agent.ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

func (m *memAgents) ListAssignments(_ context.Context, agentID int64, status string, _, _ int) ([]agent.Assignment, int, error) {
	out := make([]agent.Assignment, 0)
	for _, a := range m.assignments {
		if a.AgentID == agentID && (status == "all" || string(a.Status) == status) {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *memAgents) ListAvailable(context.Context, string, int, int) ([]jobseeker.Profile, int, error) {
	return nil, 0, nil
}

func (m *memAgents) GetAssignment(_ context.Context, agentID, jobseekerID int64) (agent.Assignment, error) {
	for _, a := range m.assignments {
		if a.AgentID == agentID && a.JobseekerID == jobseekerID {
			return a, nil
		}
	}
	return agent.Assignment{}, agent.ErrAssignmentNotFound
}

// activeElsewhere mirrors the partial unique index on active assignments.
func (m *memAgents) activeElsewhere(id, jobseekerID int64) bool {
	for _, a := range m.assignments {
		if a.ID != id && a.JobseekerID == jobseekerID && a.Status == agent.AssignmentActive {
			return true
		}
	}
	return false
}

func (m *memAgents) CreateAssignment(_ context.Context, agentID, jobseekerID int64, notes string) (agent.Assignment, error) {
	if m.activeElsewhere(0, jobseekerID) {
		return agent.Assignment{}, agent.ErrAssignedElsewhere
	}
	a := agent.Assignment{
		ID:          int64(len(m.assignments) + 1),
		AgentID:     agentID,
		JobseekerID: jobseekerID,
		Status:      agent.AssignmentActive,
		Notes:       notes,
	}
	m.assignments = append(m.assignments, a)
	return a, nil
}

func (m *memAgents) ReactivateAssignment(_ context.Context, id int64, notes string) (agent.Assignment, error) {
	for i, a := range m.assignments {
		if a.ID != id {
			continue
		}
		if m.activeElsewhere(id, a.JobseekerID) {
			return agent.Assignment{}, agent.ErrAssignedElsewhere
		}
		a.Status, a.Notes = agent.AssignmentActive, notes
		m.assignments[i] = a
		return a, nil
	}
	return agent.Assignment{}, agent.ErrAssignmentNotFound
}

func (m *memAgents) UpdateAssignment(_ context.Context, agentID, jobseekerID int64, p agent.AssignmentPatch) (agent.Assignment, error) {
	for i, a := range m.assignments {
		if a.AgentID != agentID || a.JobseekerID != jobseekerID {
			continue
		}
		if p.Status != nil {
			if *p.Status == agent.AssignmentActive && m.activeElsewhere(a.ID, jobseekerID) {
				return agent.Assignment{}, agent.ErrAssignedElsewhere
			}
			a.Status = *p.Status
		}
		if p.Notes != nil {
			a.Notes = *p.Notes
		}
		if p.CommissionEarned != nil {
			a.CommissionEarned = *p.CommissionEarned
		}
		m.assignments[i] = a
		return a, nil
	}
	return agent.Assignment{}, agent.ErrAssignmentNotFound
}

func (m *memAgents) RecordPlacement(_ context.Context, agentID int64) error {
	m.placements[agentID]++
	return nil
}

func (m *memAgents) Stats(_ context.Context, agentID int64) (agent.Stats, error) {
	var s agent.Stats
	for _, a := range m.assignments {
		if a.AgentID != agentID {
			continue
		}
		s.TotalAssigned++
		if a.Status == agent.AssignmentCompleted {
			s.CompletedAssignments++
		}
	}
	s.TotalPlacements = m.placements[agentID]
	s.SuccessRate = agent.SuccessRateOf(s.CompletedAssignments, s.TotalAssigned)
	return s, nil
}

func agentFixture() (*Agents, *memAgents) {
	agents := newMemAgents(
		agent.Agent{ID: 1, UserID: 10, AgencyName: "Seoul Bridge", UserStatus: "approved"},
		agent.Agent{ID: 2, UserID: 20, AgencyName: "Busan Link", UserStatus: "approved"},
		agent.Agent{ID: 3, UserID: 30, AgencyName: "Pending Co", UserStatus: "pending"},
	)
	seekers := newFakeSeekers(
		jobseeker.Profile{ID: 100, UserID: 1000, UserStatus: "approved"},
		jobseeker.Profile{ID: 101, UserID: 1001, UserStatus: "pending"},
	)
	return NewAgentUsecase(agents, seekers, nil), agents
}

var (
	agentOne = Actor{UserID: 10, Type: user.TypeAgent}
	agentTwo = Actor{UserID: 20, Type: user.TypeAgent}
)

func TestAgentsList_PublicSeesApprovedOnly(t *testing.T) {
	uc, _ := agentFixture()

	pub, err := uc.List(context.Background(), Actor{}, agent.ListFilter{Status: "all"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pub) != 2 {
		t.Fatalf("public list = %d agents, want 2", len(pub))
	}

	all, err := uc.List(context.Background(), adminActor, agent.ListFilter{Status: "all"})
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin list = %d agents, want 3", len(all))
	}
}

func TestAgentsCreate_GeneratesTemporaryPassword(t *testing.T) {
	uc, repo := agentFixture()
	uc.generate = func() (string, error) { return "tempPass42", nil }

	if _, _, err := uc.Create(context.Background(), agentOne, NewAgentInput{Email: "x@y.z"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin create: err = %v, want ErrForbidden", err)
	}

	a, temp, err := uc.Create(context.Background(), adminActor, NewAgentInput{
		Email: "New@Agency.kr",
		Agent: agent.Agent{AgencyName: " New Agency "},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if temp != "tempPass42" {
		t.Fatalf("temp password = %q", temp)
	}
	if a.AgencyName != "New Agency" || a.CommissionRate != agent.DefaultCommissionRate {
		t.Fatalf("created = %+v", a)
	}
	if repo.created.Email != "new@agency.kr" || repo.created.Status != user.StatusApproved || repo.created.PasswordHash == "" {
		t.Fatalf("owner = %+v", repo.created)
	}
}

func TestAgentsCreate_RejectsBadCommission(t *testing.T) {
	uc, _ := agentFixture()
	_, _, err := uc.Create(context.Background(), adminActor, NewAgentInput{
		Email:    "a@b.c",
		Password: "secret1",
		Agent:    agent.Agent{AgencyName: "A", CommissionRate: 150},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAgentsAssign_ExclusiveAndReactivate(t *testing.T) {
	uc, repo := agentFixture()
	ctx := context.Background()

	a, reactivated, err := uc.Assign(ctx, agentOne, 100, "first contact")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if reactivated || a.Status != agent.AssignmentActive {
		t.Fatalf("assign = %+v reactivated=%v", a, reactivated)
	}

	if _, _, err := uc.Assign(ctx, agentOne, 100, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("double assign: err = %v, want ErrInvalidInput", err)
	}
	if _, _, err := uc.Assign(ctx, agentTwo, 100, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("assign elsewhere: err = %v, want ErrConflict", err)
	}

	if err := uc.Unassign(ctx, agentOne, 100); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if _, reactivated, err := uc.Assign(ctx, agentTwo, 100, ""); err != nil || reactivated {
		t.Fatalf("assign after unassign: reactivated=%v err=%v", reactivated, err)
	}
	if err := uc.Unassign(ctx, agentTwo, 100); err != nil {
		t.Fatalf("Unassign two: %v", err)
	}

	again, reactivated, err := uc.Assign(ctx, agentOne, 100, "back")
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if !reactivated || again.ID != a.ID || again.Notes != "back" {
		t.Fatalf("reassign = %+v reactivated=%v", again, reactivated)
	}
	if len(repo.assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(repo.assignments))
	}
}

func TestAgentsAssign_RequiresApprovedJobseeker(t *testing.T) {
	uc, _ := agentFixture()
	ctx := context.Background()

	if _, _, err := uc.Assign(ctx, agentOne, 101, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("pending seeker: err = %v, want ErrInvalidInput", err)
	}
	if _, _, err := uc.Assign(ctx, agentOne, 999, ""); !errors.Is(err, ErrJobseekerNotFound) {
		t.Fatalf("missing seeker: err = %v, want ErrJobseekerNotFound", err)
	}
	if _, _, err := uc.Assign(ctx, Actor{UserID: 1000, Type: user.TypeJobseeker}, 100, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("jobseeker actor: err = %v, want ErrForbidden", err)
	}
}

func TestAgentsUpdateAssignment_CompletionCountsPlacementOnce(t *testing.T) {
	uc, repo := agentFixture()
	ctx := context.Background()

	if _, _, err := uc.Assign(ctx, agentOne, 100, ""); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	done := agent.AssignmentCompleted
	for i := 0; i < 2; i++ {
		if _, err := uc.UpdateAssignment(ctx, agentOne, 100, agent.AssignmentPatch{
			Status:           &done,
			CommissionEarned: ptr(int64(500000)),
		}); err != nil {
			t.Fatalf("UpdateAssignment #%d: %v", i, err)
		}
	}
	if repo.placements[1] != 1 {
		t.Fatalf("placements = %d, want 1", repo.placements[1])
	}

	st, err := uc.Stats(ctx, agentOne)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalPlacements != 1 || st.SuccessRate != 100 {
		t.Fatalf("stats = %+v", st)
	}

	if _, err := uc.UpdateAssignment(ctx, agentOne, 100, agent.AssignmentPatch{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty patch: err = %v, want ErrInvalidInput", err)
	}
	if _, err := uc.UpdateAssignment(ctx, agentTwo, 100, agent.AssignmentPatch{Notes: ptr("x")}); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("other agent: err = %v, want ErrAssignmentNotFound", err)
	}
}

func TestAgentsUpdateProfile_CannotChangeOwnStatus(t *testing.T) {
	uc, repo := agentFixture()

	got, err := uc.UpdateProfile(context.Background(), agentOne, agent.Patch{
		AgencyName: ptr("Seoul Bridge Global"),
		UserStatus: ptr("suspended"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.AgencyName != "Seoul Bridge Global" || repo.agents[1].UserStatus != "approved" {
		t.Fatalf("profile = %+v", repo.agents[1])
	}
}

func TestAgentsAssigned_ValidatesStatusFilter(t *testing.T) {
	uc, _ := agentFixture()
	ctx := context.Background()
	if _, _, err := uc.Assign(ctx, agentOne, 100, ""); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	page, err := uc.Assigned(ctx, agentOne, "", PageRequest{})
	if err != nil {
		t.Fatalf("Assigned: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("active total = %d, want 1", page.Total)
	}
	if _, err := uc.Assigned(ctx, agentOne, "bogus", PageRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bogus status: err = %v, want ErrInvalidInput", err)
	}
}
