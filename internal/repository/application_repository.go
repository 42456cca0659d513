package repository

import (
	"context"
	"fmt"

	"wow-campus/internal/database"
	"wow-campus/internal/domain/application"
)

type ApplicationRepository interface {
	Create(ctx context.Context, jobPostingID, jobseekerID int64, coverLetter string) (application.Application, error)
	GetByID(ctx context.Context, id int64) (application.Application, error)
	Exists(ctx context.Context, jobPostingID, jobseekerID int64) (bool, error)
	List(ctx context.Context, f application.ListFilter) ([]application.Application, int, error)
	ApplyReview(ctx context.Context, id int64, r application.Review) (application.Application, error)
	SetStatus(ctx context.Context, id int64, status application.Status) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `
SELECT a.id, a.job_posting_id, a.jobseeker_id, a.status, COALESCE(a.cover_letter, ''), a.interview_date,
       COALESCE(a.feedback, ''), COALESCE(a.rejection_reason, ''), a.reviewed_by, a.applied_at, a.updated_at,
       j.title, c.company_name, c.user_id, u.name, js.user_id
FROM applications a
JOIN job_postings j ON j.id = a.job_posting_id
JOIN companies c ON c.id = j.company_id
JOIN jobseekers js ON js.id = a.jobseeker_id
JOIN users u ON u.id = js.user_id`

const applicationFrom = `
FROM applications a
JOIN job_postings j ON j.id = a.job_posting_id
JOIN companies c ON c.id = j.company_id
JOIN jobseekers js ON js.id = a.jobseeker_id`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(
		&a.ID, &a.JobPostingID, &a.JobseekerID, &status, &a.CoverLetter, &a.InterviewDate,
		&a.Feedback, &a.RejectionReason, &a.ReviewedBy, &a.AppliedAt, &a.UpdatedAt,
		&a.JobTitle, &a.CompanyName, &a.CompanyUserID, &a.SeekerName, &a.SeekerUserID,
	)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

// Create inserts the application and bumps the posting's counter together.
func (r *PostgresApplicationRepository) Create(ctx context.Context, jobPostingID, jobseekerID int64, coverLetter string) (application.Application, error) {
	var id int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO applications (job_posting_id, jobseeker_id, status, cover_letter)
VALUES ($1, $2, $3, $4)
RETURNING id`,
			jobPostingID, jobseekerID, string(application.StatusSubmitted), nullString(coverLetter),
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return application.ErrAlreadyApplied
			}
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE job_postings SET applications_count = applications_count + 1 WHERE id = $1`, jobPostingID)
		return err
	})
	if err != nil {
		return application.Application{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id int64) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobPostingID, jobseekerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_posting_id = $1 AND jobseeker_id = $2)`,
		jobPostingID, jobseekerID,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresApplicationRepository) List(ctx context.Context, f application.ListFilter) ([]application.Application, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	var w whereBuilder
	if f.JobseekerID > 0 {
		w.add("a.jobseeker_id = ?", f.JobseekerID)
	}
	if f.CompanyUserID > 0 {
		w.add("c.user_id = ?", f.CompanyUserID)
	}
	if f.JobPostingID > 0 {
		w.add("a.job_posting_id = ?", f.JobPostingID)
	}
	if f.Status != "" {
		w.add("a.status = ?", string(f.Status))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+applicationFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := applicationSelect + w.sql() + fmt.Sprintf(" ORDER BY a.applied_at DESC, a.id DESC LIMIT %s OFFSET %s", w.next(limit), w.next(offset))
	rows, err := r.db.Query(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
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

func (r *PostgresApplicationRepository) ApplyReview(ctx context.Context, id int64, rv application.Review) (application.Application, error) {
	var s setBuilder
	s.set("status", string(rv.Status))
	s.set("reviewed_by", rv.ReviewedBy)
	if rv.InterviewDate != nil {
		s.set("interview_date", *rv.InterviewDate)
	}
	if rv.Feedback != nil {
		s.set("feedback", nullString(*rv.Feedback))
	}
	if rv.RejectionReason != nil {
		s.set("rejection_reason", nullString(*rv.RejectionReason))
	}

	n, err := r.db.Exec(ctx, `UPDATE applications SET `+s.clause()+` WHERE id = `+s.next(id), s.args...)
	if err != nil {
		return application.Application{}, fmt.Errorf("review application %d: %w", id, err)
	}
	if n == 0 {
		return application.Application{}, application.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresApplicationRepository) SetStatus(ctx context.Context, id int64, status application.Status) (application.Application, error) {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`, string(status), id)
	if err != nil {
		return application.Application{}, err
	}
	if n == 0 {
		return application.Application{}, application.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
