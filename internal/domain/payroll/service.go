package payroll

import "context"

type PayrollService interface {
	Upsert(ctx context.Context, req UpsertPayrollRequest) (PayrollResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest) (PayrollResponse, error)
	GenerateForPeriod(ctx context.Context, req GeneratePayrollRequest) ([]PayrollResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	// GenerateForAllCompanies is the scheduler entry point; it runs without request claims.
	GenerateForAllCompanies(ctx context.Context, period string) (int, error)
}
