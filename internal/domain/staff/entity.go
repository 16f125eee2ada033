package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is the read model of a company employee as far as the workforce core is concerned.
type Staff struct {
	ID        string
	CompanyID string
	Name      string
	Branch    string
	Role      string
	Salary    decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
