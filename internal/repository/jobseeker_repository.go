package repository

import (
	"context"
	"fmt"
	"strings"

	"wow-campus/internal/database"
	"wow-campus/internal/domain/jobseeker"

	"go.uber.org/zap"
)

type JobseekerRepository interface {
	GetByID(ctx context.Context, id int64) (jobseeker.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (jobseeker.Profile, error)
	ListApproved(ctx context.Context) ([]jobseeker.Profile, error)
	Search(ctx context.Context, f jobseeker.SearchFilter) ([]jobseeker.Profile, int, error)
	Update(ctx context.Context, id int64, p jobseeker.Patch) (jobseeker.Profile, error)
}

type PostgresJobseekerRepository struct {
	db     database.DB
	logger *zap.Logger
}

func NewPostgresJobseekerRepository(db database.DB, logger *zap.Logger) *PostgresJobseekerRepository {
	return &PostgresJobseekerRepository{db: db, logger: logger}
}

const jobseekerSelect = `
SELECT ` + jobseekerColumns + jobseekerFrom

const jobseekerFrom = `
FROM jobseekers js
JOIN users u ON u.id = js.user_id`

// jobseekerColumns lists the select-list of jobseekerSelect, for queries that
// join profiles to other tables.
const jobseekerColumns = `js.id, js.user_id, js.first_name, COALESCE(js.last_name, ''), COALESCE(js.nationality, ''),
       COALESCE(js.visa_status, ''), COALESCE(js.korean_level, ''), COALESCE(js.english_level, ''),
       COALESCE(js.education_level, ''), COALESCE(js.major, ''), js.experience_years,
       COALESCE(js.current_location, ''), COALESCE(js.preferred_location, ''), js.salary_expectation,
       COALESCE(js.bio, ''), js.skills, js.created_at, js.updated_at,
       u.name, u.email, u.status`

// jobseekerDest returns scan targets matching jobseekerColumns.
func jobseekerDest(p *jobseeker.Profile, skills **string) []any {
	return []any{
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Nationality,
		&p.VisaStatus, &p.KoreanLevel, &p.EnglishLevel,
		&p.EducationLevel, &p.Major, &p.ExperienceYears,
		&p.CurrentLocation, &p.PreferredLocation, &p.SalaryExpectation,
		&p.Bio, skills, &p.CreatedAt, &p.UpdatedAt,
		&p.Name, &p.Email, &p.UserStatus,
	}
}

func (r *PostgresJobseekerRepository) scan(row database.Row) (jobseeker.Profile, error) {
	var p jobseeker.Profile
	var skills *string
	if err := row.Scan(jobseekerDest(&p, &skills)...); err != nil {
		return jobseeker.Profile{}, err
	}
	p.Skills = decodeSkills(skills, r.logger, "jobseekers", p.ID)
	return p, nil
}

func (r *PostgresJobseekerRepository) GetByID(ctx context.Context, id int64) (jobseeker.Profile, error) {
	return r.one(ctx, jobseekerSelect+` WHERE js.id = $1`, id)
}

func (r *PostgresJobseekerRepository) GetByUserID(ctx context.Context, userID int64) (jobseeker.Profile, error) {
	return r.one(ctx, jobseekerSelect+` WHERE js.user_id = $1`, userID)
}

func (r *PostgresJobseekerRepository) one(ctx context.Context, q string, args ...any) (jobseeker.Profile, error) {
	p, err := r.scan(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if isNoRows(err) {
			return jobseeker.Profile{}, jobseeker.ErrNotFound
		}
		return jobseeker.Profile{}, err
	}
	return p, nil
}

func (r *PostgresJobseekerRepository) ListApproved(ctx context.Context) ([]jobseeker.Profile, error) {
	return r.list(ctx, jobseekerSelect+` WHERE u.status = 'approved' ORDER BY js.created_at DESC, js.id DESC`)
}

func (r *PostgresJobseekerRepository) Search(ctx context.Context, f jobseeker.SearchFilter) ([]jobseeker.Profile, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	var w whereBuilder
	w.add("u.status = ?", "approved")
	if v := strings.TrimSpace(f.Nationality); v != "" {
		w.add("js.nationality = ?", v)
	}
	if v := strings.TrimSpace(f.VisaStatus); v != "" {
		w.add("js.visa_status = ?", v)
	}
	if v := strings.TrimSpace(f.KoreanLevel); v != "" {
		w.add("js.korean_level = ?", v)
	}
	w.addILike([]string{"u.name", "js.first_name", "js.last_name", "js.major", "js.skills", "js.bio"}, f.Keyword)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+jobseekerFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := jobseekerSelect + w.sql() +
		fmt.Sprintf(" ORDER BY js.created_at DESC, js.id DESC LIMIT %s OFFSET %s", w.next(limit), w.next(offset))
	items, err := r.list(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresJobseekerRepository) list(ctx context.Context, q string, args ...any) ([]jobseeker.Profile, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]jobseeker.Profile, 0)
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobseekerRepository) Update(ctx context.Context, id int64, p jobseeker.Patch) (jobseeker.Profile, error) {
	var s setBuilder
	text := []struct {
		col string
		v   *string
	}{
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"nationality", p.Nationality},
		{"visa_status", p.VisaStatus},
		{"korean_level", p.KoreanLevel},
		{"english_level", p.EnglishLevel},
		{"education_level", p.EducationLevel},
		{"major", p.Major},
		{"current_location", p.CurrentLocation},
		{"preferred_location", p.PreferredLocation},
		{"bio", p.Bio},
	}
	for _, f := range text {
		if f.v == nil {
			continue
		}
		if f.col == "first_name" {
			s.set(f.col, strings.TrimSpace(*f.v))
			continue
		}
		s.set(f.col, nullString(*f.v))
	}
	if p.ExperienceYears != nil {
		s.set("experience_years", *p.ExperienceYears)
	}
	if p.SalaryExpectation != nil {
		s.set("salary_expectation", *p.SalaryExpectation)
	}
	if p.Skills != nil {
		enc, err := encodeSkills(*p.Skills)
		if err != nil {
			return jobseeker.Profile{}, err
		}
		s.set("skills", enc)
	}

	if s.empty() {
		return r.GetByID(ctx, id)
	}

	n, err := r.db.Exec(ctx, `UPDATE jobseekers SET `+s.clause()+` WHERE id = `+s.next(id), s.args...)
	if err != nil {
		return jobseeker.Profile{}, fmt.Errorf("update jobseeker %d: %w", id, err)
	}
	if n == 0 {
		return jobseeker.Profile{}, jobseeker.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
