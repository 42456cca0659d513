package dto

import (
	"time"

	"wow-campus/internal/domain/company"
)

type CreateCompanyRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	ContactName    string `json:"contact_name"`
	Phone          string `json:"phone"`
	CompanyName    string `json:"company_name"`
	BusinessNumber string `json:"business_number"`
	Industry       string `json:"industry"`
	CompanySize    string `json:"company_size"`
	Address        string `json:"address"`
	Website        string `json:"website"`
	Description    string `json:"description"`
	FoundedYear    *int   `json:"founded_year"`
	EmployeeCount  *int   `json:"employee_count"`
}

func (r CreateCompanyRequest) Company() company.Company {
	return company.Company{
		CompanyName:    r.CompanyName,
		BusinessNumber: r.BusinessNumber,
		Industry:       r.Industry,
		CompanySize:    company.Size(r.CompanySize),
		Address:        r.Address,
		Website:        r.Website,
		Description:    r.Description,
		FoundedYear:    r.FoundedYear,
		EmployeeCount:  r.EmployeeCount,
	}
}

type CompanyPatchRequest struct {
	CompanyName    *string `json:"company_name"`
	BusinessNumber *string `json:"business_number"`
	Industry       *string `json:"industry"`
	CompanySize    *string `json:"company_size"`
	Address        *string `json:"address"`
	Website        *string `json:"website"`
	Description    *string `json:"description"`
	FoundedYear    *int    `json:"founded_year"`
	EmployeeCount  *int    `json:"employee_count"`
}

func (r CompanyPatchRequest) Patch() company.Patch {
	p := company.Patch{
		CompanyName:    r.CompanyName,
		BusinessNumber: r.BusinessNumber,
		Industry:       r.Industry,
		Address:        r.Address,
		Website:        r.Website,
		Description:    r.Description,
		FoundedYear:    r.FoundedYear,
		EmployeeCount:  r.EmployeeCount,
	}
	if r.CompanySize != nil {
		s := company.Size(*r.CompanySize)
		p.CompanySize = &s
	}
	return p
}

type CompanyResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Email          string    `json:"email,omitempty"`
	Status         string    `json:"status,omitempty"`
	CompanyName    string    `json:"company_name"`
	BusinessNumber string    `json:"business_number"`
	Industry       string    `json:"industry"`
	CompanySize    string    `json:"company_size"`
	Address        string    `json:"address"`
	Website        string    `json:"website"`
	Description    string    `json:"description"`
	FoundedYear    *int      `json:"founded_year"`
	EmployeeCount  *int      `json:"employee_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Email:          c.Email,
		Status:         c.UserStatus,
		CompanyName:    c.CompanyName,
		BusinessNumber: c.BusinessNumber,
		Industry:       c.Industry,
		CompanySize:    string(c.CompanySize),
		Address:        c.Address,
		Website:        c.Website,
		Description:    c.Description,
		FoundedYear:    c.FoundedYear,
		EmployeeCount:  c.EmployeeCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func NewCompanyResponses(in []company.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(in))
	for _, c := range in {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}
