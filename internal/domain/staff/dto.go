package staff

import "github.com/shopspring/decimal"

type StaffResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Branch   string          `json:"branch"`
	Role     string          `json:"role"`
	Salary   decimal.Decimal `json:"salary"`
	IsActive bool            `json:"is_active"`
}

func ToResponse(s Staff) StaffResponse {
	return StaffResponse{
		ID:       s.ID,
		Name:     s.Name,
		Branch:   s.Branch,
		Role:     s.Role,
		Salary:   s.Salary,
		IsActive: s.IsActive,
	}
}
