package puantaj

import "context"

type PuantajService interface {
	// GetMonthly returns one summary per active staff member ordered by name then id.
	GetMonthly(ctx context.Context, req MonthlyRequest) ([]MonthlySummary, error)
	GetForStaff(ctx context.Context, staffID string, period string) (MonthlySummary, error)
	// Export renders the monthly grid as an xlsx workbook.
	Export(ctx context.Context, req MonthlyRequest) ([]byte, error)
}
