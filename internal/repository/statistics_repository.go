package repository

import (
	"context"
	"time"

	"wow-campus/internal/database"
)

// Snapshot is one row of the daily system_stats table.
type Snapshot struct {
	StatDate          time.Time
	TotalUsers        int
	TotalCompanies    int
	TotalJobseekers   int
	TotalAgents       int
	ActiveJobPostings int
	TotalApplications int
	UpdatedAt         time.Time
}

type StatisticsRepository interface {
	CountActiveJobs(ctx context.Context) (int, error)
	CountJobseekers(ctx context.Context) (int, error)
	CountApprovedUsers(ctx context.Context) (int, error)
	CountApprovedCompanies(ctx context.Context) (int, error)
	CountUsersByType(ctx context.Context) (map[string]int, error)
	CountApplications(ctx context.Context) (int, error)
	UpsertSnapshot(ctx context.Context, s Snapshot) error
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
}

type PostgresStatisticsRepository struct {
	db database.DB
}

func NewPostgresStatisticsRepository(db database.DB) *PostgresStatisticsRepository {
	return &PostgresStatisticsRepository{db: db}
}

func (r *PostgresStatisticsRepository) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresStatisticsRepository) CountActiveJobs(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM job_postings WHERE status = 'active'`)
}

func (r *PostgresStatisticsRepository) CountJobseekers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM jobseekers`)
}

func (r *PostgresStatisticsRepository) CountApprovedUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM users WHERE status = 'approved'`)
}

func (r *PostgresStatisticsRepository) CountApprovedCompanies(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM companies c JOIN users u ON u.id = c.user_id WHERE u.status = 'approved'`)
}

func (r *PostgresStatisticsRepository) CountApplications(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM applications`)
}

func (r *PostgresStatisticsRepository) CountUsersByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT user_type, COUNT(1) FROM users GROUP BY user_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		out[typ] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStatisticsRepository) UpsertSnapshot(ctx context.Context, s Snapshot) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO system_stats (stat_date, total_users, total_companies, total_jobseekers, total_agents, active_job_postings, total_applications)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (stat_date) DO UPDATE SET
	total_users = EXCLUDED.total_users,
	total_companies = EXCLUDED.total_companies,
	total_jobseekers = EXCLUDED.total_jobseekers,
	total_agents = EXCLUDED.total_agents,
	active_job_postings = EXCLUDED.active_job_postings,
	total_applications = EXCLUDED.total_applications,
	updated_at = now()`,
		s.StatDate, s.TotalUsers, s.TotalCompanies, s.TotalJobseekers, s.TotalAgents, s.ActiveJobPostings, s.TotalApplications,
	)
	return err
}

// LatestSnapshot returns nil when no snapshot has been taken yet.
func (r *PostgresStatisticsRepository) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	err := r.db.QueryRow(ctx, `
SELECT stat_date, total_users, total_companies, total_jobseekers, total_agents, active_job_postings, total_applications, updated_at
FROM system_stats
ORDER BY stat_date DESC
LIMIT 1`).Scan(
		&s.StatDate, &s.TotalUsers, &s.TotalCompanies, &s.TotalJobseekers, &s.TotalAgents,
		&s.ActiveJobPostings, &s.TotalApplications, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
