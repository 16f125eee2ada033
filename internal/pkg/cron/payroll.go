package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, loc *time.Location) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_monthly_payrolls", 1*time.Hour, j.GenerateMonthlyPayrolls)
}

// GenerateMonthlyPayrolls opens Pending records for the new period on the first day of the month.
// Generation skips staff that already have a record, so repeated runs during the day are no-ops.
func (j *PayrollJobs) GenerateMonthlyPayrolls(ctx context.Context) error {
	now := j.now().In(j.loc)
	if now.Day() != 1 {
		return nil
	}

	current := period.Of(now).String()
	slog.Info("Cron: Starting monthly payroll generation", "period", current)

	created, err := j.payrollService.GenerateForAllCompanies(ctx, current)
	if err != nil {
		return fmt.Errorf("failed to generate payrolls for %s: %w", current, err)
	}

	slog.Info("Cron: Monthly payroll generation completed", "period", current, "created", created)
	return nil
}
