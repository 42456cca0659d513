package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wow-campus/internal/database"
	"wow-campus/internal/domain/job"

	"go.uber.org/zap"
)

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) (job.Posting, error)
	GetByID(ctx context.Context, id int64) (job.Posting, error)
	Search(ctx context.Context, f job.SearchFilter) ([]job.Posting, int, error)
	ListActive(ctx context.Context) ([]job.Posting, error)
	Update(ctx context.Context, id int64, p job.Patch) (job.Posting, error)
	SetStatus(ctx context.Context, id int64, status job.Status) error
	IncrementViews(ctx context.Context, id int64) error
}

type PostgresJobRepository struct {
	db     database.DB
	logger *zap.Logger
}

func NewPostgresJobRepository(db database.DB, logger *zap.Logger) *PostgresJobRepository {
	return &PostgresJobRepository{db: db, logger: logger}
}

const jobSelect = `
SELECT j.id, j.company_id, j.title, j.description, j.requirements, j.responsibilities,
       j.job_type, j.job_category, j.location, j.salary_min, j.salary_max, j.currency,
       j.visa_sponsorship, j.korean_required, j.experience_level, j.education_required,
       j.skills_required, j.benefits, j.application_deadline, j.positions_available,
       j.status, j.views_count, j.applications_count, j.created_at, j.updated_at,
       c.user_id, c.company_name, COALESCE(c.industry, ''), COALESCE(c.company_size, '')
FROM job_postings j
JOIN companies c ON c.id = j.company_id`

const jobFrom = `
FROM job_postings j
JOIN companies c ON c.id = j.company_id`

var jobSortColumns = map[string]string{
	"created_at":           "j.created_at",
	"salary_max":           "j.salary_max",
	"salary_min":           "j.salary_min",
	"views_count":          "j.views_count",
	"title":                "j.title",
	"application_deadline": "j.application_deadline",
}

func (r *PostgresJobRepository) scan(row database.Row) (job.Posting, error) {
	var p job.Posting
	var jobType, status string
	var skills *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Requirements, &p.Responsibilities,
		&jobType, &p.JobCategory, &p.Location, &p.SalaryMin, &p.SalaryMax, &p.Currency,
		&p.VisaSponsorship, &p.KoreanRequired, &p.ExperienceLevel, &p.EducationRequired,
		&skills, &p.Benefits, &p.ApplicationDeadline, &p.PositionsAvailable,
		&status, &p.ViewsCount, &p.ApplicationsCount, &p.CreatedAt, &p.UpdatedAt,
		&p.CompanyUserID, &p.CompanyName, &p.Industry, &p.CompanySize,
	)
	if err != nil {
		return job.Posting{}, err
	}
	p.JobType = job.Type(jobType)
	p.Status = job.Status(status)
	p.SkillsRequired = decodeSkills(skills, r.logger, "job_postings", p.ID)
	return p, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	skills, err := encodeSkills(p.SkillsRequired)
	if err != nil {
		return job.Posting{}, err
	}
	currency := strings.TrimSpace(p.Currency)
	if currency == "" {
		currency = "KRW"
	}
	positions := p.PositionsAvailable
	if positions <= 0 {
		positions = 1
	}

	var id int64
	err = r.db.QueryRow(ctx, `
INSERT INTO job_postings (
	company_id, title, description, requirements, responsibilities, job_type, job_category,
	location, salary_min, salary_max, currency, visa_sponsorship, korean_required,
	experience_level, education_required, skills_required, benefits, application_deadline,
	positions_available, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
RETURNING id`,
		p.CompanyID, p.Title, p.Description, p.Requirements, p.Responsibilities, string(p.JobType), p.JobCategory,
		p.Location, p.SalaryMin, p.SalaryMax, currency, p.VisaSponsorship, p.KoreanRequired,
		p.ExperienceLevel, p.EducationRequired, skills, p.Benefits, p.ApplicationDeadline,
		positions, string(p.Status),
	).Scan(&id)
	if err != nil {
		return job.Posting{}, fmt.Errorf("insert job posting: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Posting, error) {
	p, err := r.scan(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]job.Posting, error) {
	return r.list(ctx, jobSelect+` WHERE j.status = 'active' ORDER BY j.created_at DESC, j.id DESC`)
}

func (r *PostgresJobRepository) Search(ctx context.Context, f job.SearchFilter) ([]job.Posting, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	var w whereBuilder
	if len(f.Statuses) > 0 {
		st := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			st = append(st, string(s))
		}
		w.add("j.status = ANY(?)", st)
	}
	keywordCols := []string{"j.title", "j.description", "c.company_name"}
	if len(f.KeywordAny) > 0 {
		w.addILikeAny(keywordCols, f.KeywordAny)
	} else {
		w.addILike(keywordCols, f.Keyword)
	}
	w.addILike([]string{"j.location"}, f.Location)
	if v := strings.TrimSpace(f.JobCategory); v != "" {
		w.add("j.job_category = ?", v)
	}
	if f.JobType != "" {
		w.add("j.job_type = ?", string(f.JobType))
	}
	if v := strings.TrimSpace(f.ExperienceLevel); v != "" {
		w.add("j.experience_level = ?", v)
	}
	if f.SalaryMin != nil {
		w.add("j.salary_max >= ?", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		w.add("j.salary_min <= ?", *f.SalaryMax)
	}
	if f.VisaSponsorship != nil {
		w.add("j.visa_sponsorship = ?", *f.VisaSponsorship)
	}
	if f.CompanyID > 0 {
		w.add("j.company_id = ?", f.CompanyID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+jobFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := jobSortColumns[strings.ToLower(strings.TrimSpace(f.Sort))]
	if !ok {
		col = "j.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(f.Order), "asc") {
		dir = "ASC"
	}

	q := jobSelect + w.sql() +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST, j.id DESC LIMIT %s OFFSET %s", col, dir, w.next(limit), w.next(offset))
	items, err := r.list(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresJobRepository) list(ctx context.Context, q string, args ...any) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
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

func (r *PostgresJobRepository) Update(ctx context.Context, id int64, p job.Patch) (job.Posting, error) {
	var s setBuilder
	if p.Title != nil {
		s.set("title", *p.Title)
	}
	if p.Description != nil {
		s.set("description", *p.Description)
	}
	if p.Requirements != nil {
		s.set("requirements", nullString(*p.Requirements))
	}
	if p.Responsibilities != nil {
		s.set("responsibilities", nullString(*p.Responsibilities))
	}
	if p.JobType != nil {
		s.set("job_type", string(*p.JobType))
	}
	if p.JobCategory != nil {
		s.set("job_category", *p.JobCategory)
	}
	if p.Location != nil {
		s.set("location", *p.Location)
	}
	if p.SalaryMin != nil {
		s.set("salary_min", *p.SalaryMin)
	}
	if p.SalaryMax != nil {
		s.set("salary_max", *p.SalaryMax)
	}
	if p.VisaSponsorship != nil {
		s.set("visa_sponsorship", *p.VisaSponsorship)
	}
	if p.KoreanRequired != nil {
		s.set("korean_required", *p.KoreanRequired)
	}
	if p.ExperienceLevel != nil {
		s.set("experience_level", nullString(*p.ExperienceLevel))
	}
	if p.EducationRequired != nil {
		s.set("education_required", nullString(*p.EducationRequired))
	}
	if p.SkillsRequired != nil {
		enc, err := encodeSkills(*p.SkillsRequired)
		if err != nil {
			return job.Posting{}, err
		}
		s.set("skills_required", enc)
	}
	if p.Benefits != nil {
		s.set("benefits", nullString(*p.Benefits))
	}
	if p.ApplicationDeadline != nil {
		s.set("application_deadline", *p.ApplicationDeadline)
	}
	if p.PositionsAvailable != nil {
		s.set("positions_available", *p.PositionsAvailable)
	}
	if p.Status != nil {
		s.set("status", string(*p.Status))
	}

	if s.empty() {
		return r.GetByID(ctx, id)
	}

	q := `UPDATE job_postings SET ` + s.clause() + ` WHERE id = ` + s.next(id)
	n, err := r.db.Exec(ctx, q, s.args...)
	if err != nil {
		return job.Posting{}, fmt.Errorf("update job posting %d: %w", id, err)
	}
	if n == 0 {
		return job.Posting{}, job.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id int64, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE job_postings SET status = $1, updated_at = $2 WHERE id = $3`, string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE job_postings SET views_count = views_count + 1 WHERE id = $1`, id)
	return err
}
