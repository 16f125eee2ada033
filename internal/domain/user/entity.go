package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleOwner   Role = "owner"   // Company owner - full access
	RoleManager Role = "manager" // Branch manager - approves leave, runs payroll
	RoleStaff   Role = "staff"   // Regular staff member
)

// Claims is the subset of the access token the workforce services act on. Tokens are
// issued by the surrounding auth system.
type Claims struct {
	UserID    string
	CompanyID string
	Role      Role
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Claims{}, ErrCompanyIDRequired
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)

	return Claims{UserID: userID, CompanyID: companyID, Role: Role(role)}, nil
}
