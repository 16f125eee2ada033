package puantaj

import (
	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

type MonthlyRequest struct {
	Period string
	Branch *string
}

func (r *MonthlyRequest) Validate() error {
	if !validator.IsValidPeriod(r.Period) {
		return validator.ValidationErrors{{Field: "period", Message: "period must be in YYYY-MM format"}}
	}
	return nil
}
