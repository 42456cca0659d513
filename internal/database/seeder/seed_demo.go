package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"wow-campus/internal/database"

	"golang.org/x/crypto/bcrypt"
)

const (
	demoCompanyEmail = "demo-company@wowcampus.kr"
	demoSeekerEmail  = "demo-jobseeker@wowcampus.kr"
	demoPassword     = "demo1234"
)

// DemoSeeder inserts one company with postings and a few jobseekers so the
// matching endpoints return data on a fresh database. It is a no-op once the
// demo company exists.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) RequiredColumns() []TableColumns {
	return []TableColumns{
		{Table: "companies", Columns: []string{"user_id", "company_name"}},
		{Table: "job_postings", Columns: []string{"company_id", "title", "skills_required", "status"}},
		{Table: "jobseekers", Columns: []string{"user_id", "first_name", "skills", "preferred_location"}},
	}
}

type demoJob struct {
	Title           string
	Category        string
	JobType         string
	Location        string
	SalaryMin       int64
	SalaryMax       int64
	Visa            bool
	ExperienceLevel string
	Skills          []string
}

type demoSeeker struct {
	Email     string
	FirstName string
	Nation    string
	Visa      string
	Korean    string
	Years     int
	Location  string
	Salary    int64
	Skills    []string
}

var demoJobs = []demoJob{
	{"백엔드 개발자 (Go)", "IT/소프트웨어", "full_time", "서울", 3500, 5000, true, "mid", []string{"Go", "PostgreSQL", "Redis", "Docker"}},
	{"프론트엔드 개발자", "IT/소프트웨어", "full_time", "서울/경기", 3000, 4000, true, "junior", []string{"React", "TypeScript", "Node"}},
	{"생산관리 사무원", "제조", "contract", "부산", 2800, 3200, false, "entry", []string{"Excel", "Korean"}},
	{"데이터 분석 인턴", "IT/소프트웨어", "internship", "대전", 2400, 2600, true, "entry", []string{"Python", "SQL"}},
}

var demoSeekers = []demoSeeker{
	{demoSeekerEmail, "Nguyen", "Vietnam", "D-10", "intermediate", 5, "서울", 4500, []string{"React", "Node", "Go"}},
	{"demo-jobseeker2@wowcampus.kr", "Li", "China", "F-2", "advanced", 2, "경기", 3200, []string{"TypeScript", "React"}},
	{"demo-jobseeker3@wowcampus.kr", "Aziz", "Uzbekistan", "E-7", "beginner", 0, "부산", 2800, []string{"Excel"}},
}

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1)`, demoCompanyEmail).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var userID, companyID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (email, password_hash, user_type, status, name) VALUES ($1, $2, 'company', 'approved', $3) RETURNING id`,
			demoCompanyEmail, string(hash), "데모 담당자",
		).Scan(&userID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx,
			`INSERT INTO companies (user_id, company_name, industry, company_size, address) VALUES ($1, $2, $3, 'medium', $4) RETURNING id`,
			userID, "와우캠퍼스 데모", "IT/소프트웨어", "서울",
		).Scan(&companyID); err != nil {
			return err
		}

		for _, j := range demoJobs {
			skills, err := json.Marshal(j.Skills)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_postings
					(company_id, title, description, job_type, job_category, location, salary_min, salary_max, visa_sponsorship, experience_level, skills_required, status)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'active')`,
				companyID, j.Title, j.Title+" 채용", j.JobType, j.Category, j.Location, j.SalaryMin, j.SalaryMax, j.Visa, j.ExperienceLevel, string(skills),
			); err != nil {
				return fmt.Errorf("insert job %q: %w", j.Title, err)
			}
		}

		for _, s := range demoSeekers {
			skills, err := json.Marshal(s.Skills)
			if err != nil {
				return err
			}
			var seekerUserID int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO users (email, password_hash, user_type, status, name) VALUES ($1, $2, 'jobseeker', 'approved', $3) RETURNING id`,
				s.Email, string(hash), s.FirstName,
			).Scan(&seekerUserID); err != nil {
				return fmt.Errorf("insert jobseeker %s: %w", s.Email, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO jobseekers
					(user_id, first_name, nationality, visa_status, korean_level, experience_years, preferred_location, salary_expectation, skills)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				seekerUserID, s.FirstName, s.Nation, s.Visa, s.Korean, s.Years, s.Location, s.Salary, string(skills),
			); err != nil {
				return fmt.Errorf("insert jobseeker profile %s: %w", s.Email, err)
			}
		}
		return nil
	})
}
