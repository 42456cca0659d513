package repository

import (
	"context"
	"fmt"

	"wow-campus/internal/database"
	"wow-campus/internal/domain/company"
	"wow-campus/internal/domain/user"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (company.Company, error)
	GetByUserID(ctx context.Context, userID int64) (company.Company, error)
	List(ctx context.Context, keyword string, limit, offset int) ([]company.Company, int, error)
	CreateWithOwner(ctx context.Context, owner user.User, c company.Company) (company.Company, error)
	Update(ctx context.Context, id int64, p company.Patch) (company.Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companySelect = `
SELECT c.id, c.user_id, c.company_name, COALESCE(c.business_number, ''), COALESCE(c.industry, ''),
       COALESCE(c.company_size, ''), COALESCE(c.address, ''), COALESCE(c.website, ''),
       COALESCE(c.description, ''), c.founded_year, c.employee_count, c.created_at, c.updated_at,
       u.email, u.status
FROM companies c
JOIN users u ON u.id = c.user_id`

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	var size string
	err := row.Scan(
		&c.ID, &c.UserID, &c.CompanyName, &c.BusinessNumber, &c.Industry,
		&size, &c.Address, &c.Website,
		&c.Description, &c.FoundedYear, &c.EmployeeCount, &c.CreatedAt, &c.UpdatedAt,
		&c.Email, &c.UserStatus,
	)
	if err != nil {
		return company.Company{}, err
	}
	c.CompanySize = company.Size(size)
	return c, nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id int64) (company.Company, error) {
	return r.one(ctx, companySelect+` WHERE c.id = $1`, id)
}

func (r *PostgresCompanyRepository) GetByUserID(ctx context.Context, userID int64) (company.Company, error) {
	return r.one(ctx, companySelect+` WHERE c.user_id = $1`, userID)
}

func (r *PostgresCompanyRepository) one(ctx context.Context, q string, args ...any) (company.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if isNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) List(ctx context.Context, keyword string, limit, offset int) ([]company.Company, int, error) {
	limit, offset = clampPage(limit, offset)

	var w whereBuilder
	w.addILike([]string{"c.company_name", "c.industry", "u.email"}, keyword)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM companies c JOIN users u ON u.id = c.user_id`+w.sql(), w.args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	q := companySelect + w.sql() + fmt.Sprintf(" ORDER BY c.created_at DESC, c.id DESC LIMIT %s OFFSET %s", w.next(limit), w.next(offset))
	rows, err := r.db.Query(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CreateWithOwner inserts the owning company account and its profile in one
// transaction.
func (r *PostgresCompanyRepository) CreateWithOwner(ctx context.Context, owner user.User, c company.Company) (company.Company, error) {
	var companyID int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `
INSERT INTO users (email, password_hash, user_type, status, name, phone)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
			owner.Email, owner.PasswordHash, string(user.TypeCompany), string(owner.Status), owner.Name, nullString(owner.Phone),
		).Scan(&userID)
		if err != nil {
			if isUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return err
		}

		return tx.QueryRow(ctx, `
INSERT INTO companies (user_id, company_name, business_number, industry, company_size, address, website, description, founded_year, employee_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`,
			userID, c.CompanyName, nullString(c.BusinessNumber), nullString(c.Industry), nullString(string(c.CompanySize)),
			nullString(c.Address), nullString(c.Website), nullString(c.Description), c.FoundedYear, c.EmployeeCount,
		).Scan(&companyID)
	})
	if err != nil {
		return company.Company{}, err
	}
	return r.GetByID(ctx, companyID)
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, id int64, p company.Patch) (company.Company, error) {
	var s setBuilder
	if p.CompanyName != nil {
		s.set("company_name", *p.CompanyName)
	}
	if p.BusinessNumber != nil {
		s.set("business_number", nullString(*p.BusinessNumber))
	}
	if p.Industry != nil {
		s.set("industry", nullString(*p.Industry))
	}
	if p.CompanySize != nil {
		s.set("company_size", nullString(string(*p.CompanySize)))
	}
	if p.Address != nil {
		s.set("address", nullString(*p.Address))
	}
	if p.Website != nil {
		s.set("website", nullString(*p.Website))
	}
	if p.Description != nil {
		s.set("description", nullString(*p.Description))
	}
	if p.FoundedYear != nil {
		s.set("founded_year", *p.FoundedYear)
	}
	if p.EmployeeCount != nil {
		s.set("employee_count", *p.EmployeeCount)
	}
	if s.empty() {
		return r.GetByID(ctx, id)
	}

	n, err := r.db.Exec(ctx, `UPDATE companies SET `+s.clause()+` WHERE id = `+s.next(id), s.args...)
	if err != nil {
		return company.Company{}, fmt.Errorf("update company %d: %w", id, err)
	}
	if n == 0 {
		return company.Company{}, company.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
