package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wow-campus/internal/database"
	"wow-campus/internal/domain/agent"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/user"

	"go.uber.org/zap"
)

type AgentRepository interface {
	List(ctx context.Context, f agent.ListFilter) ([]agent.Agent, error)
	GetByID(ctx context.Context, id int64) (agent.Agent, error)
	GetByUserID(ctx context.Context, userID int64) (agent.Agent, error)
	CreateWithUser(ctx context.Context, owner user.User, a agent.Agent) (agent.Agent, error)
	Update(ctx context.Context, id int64, p agent.Patch) (agent.Agent, error)
	Delete(ctx context.Context, id int64) error

	ListAssignments(ctx context.Context, agentID int64, status string, limit, offset int) ([]agent.Assignment, int, error)
	ListAvailable(ctx context.Context, query string, limit, offset int) ([]jobseeker.Profile, int, error)
	GetAssignment(ctx context.Context, agentID, jobseekerID int64) (agent.Assignment, error)
	CreateAssignment(ctx context.Context, agentID, jobseekerID int64, notes string) (agent.Assignment, error)
	ReactivateAssignment(ctx context.Context, id int64, notes string) (agent.Assignment, error)
	UpdateAssignment(ctx context.Context, agentID, jobseekerID int64, p agent.AssignmentPatch) (agent.Assignment, error)
	RecordPlacement(ctx context.Context, agentID int64) error
	Stats(ctx context.Context, agentID int64) (agent.Stats, error)
}

type PostgresAgentRepository struct {
	db     database.DB
	logger *zap.Logger
}

func NewPostgresAgentRepository(db database.DB, logger *zap.Logger) *PostgresAgentRepository {
	return &PostgresAgentRepository{db: db, logger: logger}
}

const agentSelect = `
SELECT a.id, a.user_id, a.agency_name, COALESCE(a.license_number, ''), a.specialization,
       a.countries_covered, a.languages, a.commission_rate, a.experience_years,
       a.total_placements, a.success_rate, COALESCE(a.introduction, ''), a.created_at, a.updated_at,
       u.name, u.email, COALESCE(u.phone, ''), u.status
FROM agents a
JOIN users u ON u.id = a.user_id`

func (r *PostgresAgentRepository) scan(row database.Row) (agent.Agent, error) {
	var a agent.Agent
	var spec, countries, langs *string
	err := row.Scan(
		&a.ID, &a.UserID, &a.AgencyName, &a.LicenseNumber, &spec,
		&countries, &langs, &a.CommissionRate, &a.ExperienceYears,
		&a.TotalPlacements, &a.SuccessRate, &a.Introduction, &a.CreatedAt, &a.UpdatedAt,
		&a.ContactName, &a.Email, &a.Phone, &a.UserStatus,
	)
	if err != nil {
		return agent.Agent{}, err
	}
	a.Specialization = decodeSkills(spec, r.logger, "agents.specialization", a.ID)
	a.CountriesCovered = decodeSkills(countries, r.logger, "agents.countries_covered", a.ID)
	a.Languages = decodeSkills(langs, r.logger, "agents.languages", a.ID)
	return a, nil
}

func (r *PostgresAgentRepository) List(ctx context.Context, f agent.ListFilter) ([]agent.Agent, error) {
	var w whereBuilder
	w.add("u.user_type = ?", string(user.TypeAgent))
	if st := strings.TrimSpace(f.Status); st != "" && st != "all" {
		w.add("u.status = ?", st)
	}
	if sp := strings.TrimSpace(f.Specialization); sp != "" && sp != "all" {
		w.add("a.specialization ILIKE ?", `%"`+sp+`"%`)
	}

	rows, err := r.db.Query(ctx, agentSelect+w.sql()+` ORDER BY a.created_at DESC, a.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]agent.Agent, 0)
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresAgentRepository) GetByID(ctx context.Context, id int64) (agent.Agent, error) {
	return r.one(ctx, agentSelect+` WHERE a.id = $1`, id)
}

func (r *PostgresAgentRepository) GetByUserID(ctx context.Context, userID int64) (agent.Agent, error) {
	return r.one(ctx, agentSelect+` WHERE a.user_id = $1`, userID)
}

func (r *PostgresAgentRepository) one(ctx context.Context, q string, args ...any) (agent.Agent, error) {
	a, err := r.scan(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if isNoRows(err) {
			return agent.Agent{}, agent.ErrNotFound
		}
		return agent.Agent{}, err
	}
	return a, nil
}

// CreateWithUser inserts the agent account and its agency profile in one
// transaction.
func (r *PostgresAgentRepository) CreateWithUser(ctx context.Context, owner user.User, a agent.Agent) (agent.Agent, error) {
	spec, countries, langs, err := encodeAgentLists(a.Specialization, a.CountriesCovered, a.Languages)
	if err != nil {
		return agent.Agent{}, err
	}

	var agentID int64
	err = database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `
INSERT INTO users (email, password_hash, user_type, status, name, phone)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
			owner.Email, owner.PasswordHash, string(user.TypeAgent), string(owner.Status), owner.Name, nullString(owner.Phone),
		).Scan(&userID)
		if err != nil {
			if isUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return err
		}

		return tx.QueryRow(ctx, `
INSERT INTO agents (user_id, agency_name, license_number, specialization, countries_covered, languages,
                    commission_rate, experience_years, introduction)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`,
			userID, a.AgencyName, nullString(a.LicenseNumber), spec, countries, langs,
			a.CommissionRate, a.ExperienceYears, nullString(a.Introduction),
		).Scan(&agentID)
	})
	if err != nil {
		return agent.Agent{}, err
	}
	return r.GetByID(ctx, agentID)
}

func (r *PostgresAgentRepository) Update(ctx context.Context, id int64, p agent.Patch) (agent.Agent, error) {
	var s setBuilder
	if p.AgencyName != nil {
		s.set("agency_name", *p.AgencyName)
	}
	if p.LicenseNumber != nil {
		s.set("license_number", nullString(*p.LicenseNumber))
	}
	lists := []struct {
		col string
		v   *[]string
	}{
		{"specialization", p.Specialization},
		{"countries_covered", p.CountriesCovered},
		{"languages", p.Languages},
	}
	for _, l := range lists {
		if l.v == nil {
			continue
		}
		enc, err := encodeSkills(*l.v)
		if err != nil {
			return agent.Agent{}, err
		}
		s.set(l.col, enc)
	}
	if p.CommissionRate != nil {
		s.set("commission_rate", *p.CommissionRate)
	}
	if p.ExperienceYears != nil {
		s.set("experience_years", *p.ExperienceYears)
	}
	if p.Introduction != nil {
		s.set("introduction", nullString(*p.Introduction))
	}

	var us setBuilder
	if p.ContactName != nil {
		us.set("name", *p.ContactName)
	}
	if p.Phone != nil {
		us.set("phone", nullString(*p.Phone))
	}
	if p.UserStatus != nil {
		us.set("status", *p.UserStatus)
	}

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var userID int64
		if err := tx.QueryRow(ctx, `SELECT user_id FROM agents WHERE id = $1 FOR UPDATE`, id).Scan(&userID); err != nil {
			if isNoRows(err) {
				return agent.ErrNotFound
			}
			return err
		}
		if !s.empty() {
			if _, err := tx.Exec(ctx, `UPDATE agents SET `+s.clause()+` WHERE id = `+s.next(id), s.args...); err != nil {
				return fmt.Errorf("update agent %d: %w", id, err)
			}
		}
		if !us.empty() {
			if _, err := tx.Exec(ctx, `UPDATE users SET `+us.clause()+` WHERE id = `+us.next(userID), us.args...); err != nil {
				return fmt.Errorf("update agent %d account: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return agent.Agent{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the owning account; the agent row and its assignments
// cascade.
func (r *PostgresAgentRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = (SELECT user_id FROM agents WHERE id = $1)`, id)
	if err != nil {
		return fmt.Errorf("delete agent %d: %w", id, err)
	}
	if n == 0 {
		return agent.ErrNotFound
	}
	return nil
}

const assignmentColumns = `aj.id, aj.agent_id, aj.jobseeker_id, aj.status, COALESCE(aj.notes, ''),
       aj.commission_earned, aj.placement_date, aj.assigned_at, aj.updated_at`

const assignmentSelect = `
SELECT ` + assignmentColumns + `, ` + jobseekerColumns + `
FROM agent_jobseekers aj
JOIN jobseekers js ON js.id = aj.jobseeker_id
JOIN users u ON u.id = js.user_id`

func (r *PostgresAgentRepository) scanAssignment(row database.Row) (agent.Assignment, error) {
	var a agent.Assignment
	var status string
	var skills *string
	dest := append([]any{
		&a.ID, &a.AgentID, &a.JobseekerID, &status, &a.Notes,
		&a.CommissionEarned, &a.PlacementDate, &a.AssignedAt, &a.UpdatedAt,
	}, jobseekerDest(&a.Jobseeker, &skills)...)
	if err := row.Scan(dest...); err != nil {
		return agent.Assignment{}, err
	}
	a.Status = agent.AssignmentStatus(status)
	a.Jobseeker.Skills = decodeSkills(skills, r.logger, "jobseekers", a.Jobseeker.ID)
	return a, nil
}

func (r *PostgresAgentRepository) ListAssignments(ctx context.Context, agentID int64, status string, limit, offset int) ([]agent.Assignment, int, error) {
	limit, offset = clampPage(limit, offset)

	var w whereBuilder
	w.add("aj.agent_id = ?", agentID)
	if status != "" && status != "all" {
		w.add("aj.status = ?", status)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM agent_jobseekers aj`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := assignmentSelect + w.sql() +
		fmt.Sprintf(" ORDER BY aj.assigned_at DESC, aj.id DESC LIMIT %s OFFSET %s", w.next(limit), w.next(offset))
	rows, err := r.db.Query(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]agent.Assignment, 0)
	for rows.Next() {
		a, err := r.scanAssignment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAvailable returns approved jobseekers with no active assignment to any
// agent.
func (r *PostgresAgentRepository) ListAvailable(ctx context.Context, query string, limit, offset int) ([]jobseeker.Profile, int, error) {
	limit, offset = clampPage(limit, offset)

	var w whereBuilder
	w.add("u.status = ?", string(user.StatusApproved))
	w.add("NOT EXISTS (SELECT 1 FROM agent_jobseekers aj WHERE aj.jobseeker_id = js.id AND aj.status = ?)", string(agent.AssignmentActive))
	w.addILike([]string{"u.name", "u.email", "u.phone"}, query)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+jobseekerFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := jobseekerSelect + w.sql() +
		fmt.Sprintf(" ORDER BY u.created_at DESC, js.id DESC LIMIT %s OFFSET %s", w.next(limit), w.next(offset))
	rows, err := r.db.Query(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]jobseeker.Profile, 0)
	for rows.Next() {
		var p jobseeker.Profile
		var skills *string
		if err := rows.Scan(jobseekerDest(&p, &skills)...); err != nil {
			return nil, 0, err
		}
		p.Skills = decodeSkills(skills, r.logger, "jobseekers", p.ID)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresAgentRepository) GetAssignment(ctx context.Context, agentID, jobseekerID int64) (agent.Assignment, error) {
	a, err := r.scanAssignment(r.db.QueryRow(ctx,
		assignmentSelect+` WHERE aj.agent_id = $1 AND aj.jobseeker_id = $2`, agentID, jobseekerID))
	if err != nil {
		if isNoRows(err) {
			return agent.Assignment{}, agent.ErrAssignmentNotFound
		}
		return agent.Assignment{}, err
	}
	return a, nil
}

func (r *PostgresAgentRepository) byID(ctx context.Context, id int64) (agent.Assignment, error) {
	a, err := r.scanAssignment(r.db.QueryRow(ctx, assignmentSelect+` WHERE aj.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return agent.Assignment{}, agent.ErrAssignmentNotFound
		}
		return agent.Assignment{}, err
	}
	return a, nil
}

func (r *PostgresAgentRepository) CreateAssignment(ctx context.Context, agentID, jobseekerID int64, notes string) (agent.Assignment, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
INSERT INTO agent_jobseekers (agent_id, jobseeker_id, notes, status)
VALUES ($1, $2, $3, 'active')
RETURNING id`, agentID, jobseekerID, nullString(notes)).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return agent.Assignment{}, agent.ErrAssignedElsewhere
		}
		return agent.Assignment{}, fmt.Errorf("assign jobseeker %d to agent %d: %w", jobseekerID, agentID, err)
	}
	return r.byID(ctx, id)
}

func (r *PostgresAgentRepository) ReactivateAssignment(ctx context.Context, id int64, notes string) (agent.Assignment, error) {
	n, err := r.db.Exec(ctx, `
UPDATE agent_jobseekers
SET status = 'active', assigned_at = now(), notes = $2, updated_at = now()
WHERE id = $1`, id, nullString(notes))
	if err != nil {
		if isUniqueViolation(err) {
			return agent.Assignment{}, agent.ErrAssignedElsewhere
		}
		return agent.Assignment{}, fmt.Errorf("reactivate assignment %d: %w", id, err)
	}
	if n == 0 {
		return agent.Assignment{}, agent.ErrAssignmentNotFound
	}
	return r.byID(ctx, id)
}

func (r *PostgresAgentRepository) UpdateAssignment(ctx context.Context, agentID, jobseekerID int64, p agent.AssignmentPatch) (agent.Assignment, error) {
	var s setBuilder
	if p.Notes != nil {
		s.set("notes", nullString(*p.Notes))
	}
	if p.Status != nil {
		s.set("status", string(*p.Status))
	}
	if p.CommissionEarned != nil {
		s.set("commission_earned", *p.CommissionEarned)
	}
	if p.PlacementDate != nil {
		s.set("placement_date", p.PlacementDate.Format(time.DateOnly))
	}
	if s.empty() {
		return r.GetAssignment(ctx, agentID, jobseekerID)
	}

	q := `UPDATE agent_jobseekers SET ` + s.clause() + ` WHERE agent_id = ` + s.next(agentID) + ` AND jobseeker_id = ` + s.next(jobseekerID)
	n, err := r.db.Exec(ctx, q, s.args...)
	if err != nil {
		if isUniqueViolation(err) {
			return agent.Assignment{}, agent.ErrAssignedElsewhere
		}
		return agent.Assignment{}, fmt.Errorf("update assignment %d/%d: %w", agentID, jobseekerID, err)
	}
	if n == 0 {
		return agent.Assignment{}, agent.ErrAssignmentNotFound
	}
	return r.GetAssignment(ctx, agentID, jobseekerID)
}

// RecordPlacement counts one more placement and recomputes the success rate
// from the assignment table.
func (r *PostgresAgentRepository) RecordPlacement(ctx context.Context, agentID int64) error {
	n, err := r.db.Exec(ctx, `
UPDATE agents a
SET total_placements = a.total_placements + 1,
    success_rate = COALESCE((
        SELECT 100.0 * SUM(CASE WHEN aj.status = 'completed' THEN 1 ELSE 0 END) / NULLIF(COUNT(1), 0)
        FROM agent_jobseekers aj WHERE aj.agent_id = a.id
    ), 0),
    updated_at = now()
WHERE a.id = $1`, agentID)
	if err != nil {
		return fmt.Errorf("record placement for agent %d: %w", agentID, err)
	}
	if n == 0 {
		return agent.ErrNotFound
	}
	return nil
}

func (r *PostgresAgentRepository) Stats(ctx context.Context, agentID int64) (agent.Stats, error) {
	var s agent.Stats
	err := r.db.QueryRow(ctx, `
SELECT a.total_placements, a.success_rate, a.commission_rate,
       COUNT(aj.id),
       COUNT(aj.id) FILTER (WHERE aj.status = 'active'),
       COUNT(aj.id) FILTER (WHERE aj.status = 'inactive'),
       COUNT(aj.id) FILTER (WHERE aj.status = 'completed'),
       COALESCE(SUM(aj.commission_earned), 0)
FROM agents a
LEFT JOIN agent_jobseekers aj ON aj.agent_id = a.id
WHERE a.id = $1
GROUP BY a.id`, agentID).Scan(
		&s.TotalPlacements, &s.SuccessRate, &s.CommissionRate,
		&s.TotalAssigned, &s.ActiveAssignments, &s.InactiveAssignments, &s.CompletedAssignments,
		&s.TotalCommission,
	)
	if err != nil {
		if isNoRows(err) {
			return agent.Stats{}, agent.ErrNotFound
		}
		return agent.Stats{}, err
	}
	return s, nil
}

func encodeAgentLists(spec, countries, langs []string) (string, string, string, error) {
	var out [3]string
	for i, l := range [][]string{spec, countries, langs} {
		enc, err := encodeSkills(l)
		if err != nil {
			return "", "", "", err
		}
		out[i] = enc
	}
	return out[0], out[1], out[2], nil
}
