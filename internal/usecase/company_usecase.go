package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"wow-campus/internal/domain/company"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"
	ucauth "wow-campus/internal/usecase/auth"

	"go.uber.org/zap"
)

type NewCompanyInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Company  company.Company
}

type CompanyUsecase interface {
	List(ctx context.Context, keyword string, p PageRequest) (Page[company.Company], error)
	Create(ctx context.Context, in NewCompanyInput) (company.Company, error)
	Mine(ctx context.Context, actor Actor) (company.Company, error)
	UpdateMine(ctx context.Context, actor Actor, p company.Patch) (company.Company, error)
}

type Companies struct {
	companies repository.CompanyRepository
	logger    *zap.Logger
}

func NewCompanyUsecase(companies repository.CompanyRepository, logger *zap.Logger) *Companies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Companies{companies: companies, logger: logger}
}

func (u *Companies) List(ctx context.Context, keyword string, p PageRequest) (Page[company.Company], error) {
	page, limit, offset := p.normalize()
	items, total, err := u.companies.List(ctx, keyword, limit, offset)
	if err != nil {
		u.logger.Error("list companies", zap.Error(err))
		return Page[company.Company]{}, ErrInternal
	}
	return newPage(items, total, page, limit), nil
}

// Create is the admin path for onboarding a company: the owning account is
// created approved with the given password.
func (u *Companies) Create(ctx context.Context, in NewCompanyInput) (company.Company, error) {
	email := strings.ToLower(trim(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return company.Company{}, invalid("올바른 이메일 형식을 입력해주세요.")
	}
	if len(in.Password) < 6 {
		return company.Company{}, invalid("비밀번호는 최소 6자 이상이어야 합니다.")
	}
	c := in.Company
	c.CompanyName = trim(c.CompanyName)
	if c.CompanyName == "" {
		return company.Company{}, invalid("회사명은 필수입니다.")
	}
	if err := validateCompanyFields(c.CompanySize, c.FoundedYear, c.EmployeeCount); err != nil {
		return company.Company{}, err
	}

	hash, err := ucauth.HashPassword(in.Password, 0)
	if err != nil {
		return company.Company{}, ErrInternal
	}

	name := trim(in.Name)
	if name == "" {
		name = c.CompanyName
	}
	created, err := u.companies.CreateWithOwner(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     user.TypeCompany,
		Status:       user.StatusApproved,
		Name:         name,
		Phone:        trim(in.Phone),
	}, c)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return company.Company{}, ErrConflict
		}
		u.logger.Error("create company", zap.String("email", email), zap.Error(err))
		return company.Company{}, ErrInternal
	}
	return created, nil
}

func (u *Companies) Mine(ctx context.Context, actor Actor) (company.Company, error) {
	if actor.Type != user.TypeCompany {
		return company.Company{}, ErrForbidden
	}
	c, err := u.companies.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrCompanyNotFound
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) UpdateMine(ctx context.Context, actor Actor, p company.Patch) (company.Company, error) {
	c, err := u.Mine(ctx, actor)
	if err != nil {
		return company.Company{}, err
	}
	if p.CompanyName != nil && trim(*p.CompanyName) == "" {
		return company.Company{}, invalid("회사명은 필수입니다.")
	}
	var size company.Size
	if p.CompanySize != nil {
		size = *p.CompanySize
	}
	if err := validateCompanyFields(size, p.FoundedYear, p.EmployeeCount); err != nil {
		return company.Company{}, err
	}

	updated, err := u.companies.Update(ctx, c.ID, p)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrCompanyNotFound
		}
		u.logger.Error("update company", zap.Int64("company_id", c.ID), zap.Error(err))
		return company.Company{}, ErrInternal
	}
	return updated, nil
}

func validateCompanyFields(size company.Size, founded, employees *int) error {
	if size != "" {
		if _, ok := company.ParseSize(string(size)); !ok {
			return invalid("invalid company_size")
		}
	}
	if founded != nil && (*founded < 1800 || *founded > time.Now().Year()) {
		return invalid("invalid founded_year")
	}
	if employees != nil && *employees < 0 {
		return invalid("employee_count must not be negative")
	}
	return nil
}
