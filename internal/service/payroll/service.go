package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	db               database.Transactor
	payrollRepo      payroll.PayrollRepository
	staffRepo        staff.StaffRepository
	ledgerService    ledger.LedgerService
	expenseAccountID string
	defaultSalary    decimal.Decimal
	now              func() time.Time
}

func NewPayrollService(
	db database.Transactor,
	payrollRepo payroll.PayrollRepository,
	staffRepo staff.StaffRepository,
	ledgerService ledger.LedgerService,
	expenseAccountID string,
	defaultSalary decimal.Decimal,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:               db,
		payrollRepo:      payrollRepo,
		staffRepo:        staffRepo,
		ledgerService:    ledgerService,
		expenseAccountID: expenseAccountID,
		defaultSalary:    defaultSalary,
		now:              time.Now,
	}
}

// ========== UPSERT ==========

func (s *PayrollServiceImpl) Upsert(ctx context.Context, req payroll.UpsertPayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, claims.CompanyID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	salary := s.baseSalary(member)
	if req.Salary != nil {
		salary = *req.Salary
	}

	var record payroll.PayrollRecord
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		record, err = s.upsert(txCtx, claims.CompanyID, member.ID, req.Period, salary, req.Bonus, req.Deductions, req.Notes)
		return err
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	record.StaffName = &member.Name
	record.Branch = &member.Branch
	return s.respond(record), nil
}

// upsert creates the period record as Pending or recomputes the numbers of an existing
// one. A paid record only accepts an identical re-run.
func (s *PayrollServiceImpl) upsert(ctx context.Context, companyID, staffID, period string, salary, bonus, deductions decimal.Decimal, notes *string) (payroll.PayrollRecord, error) {
	existing, err := s.payrollRepo.GetByStaffPeriod(ctx, staffID, period, companyID)
	if err != nil {
		if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.PayrollRecord{}, err
		}
		return s.payrollRepo.Create(ctx, payroll.PayrollRecord{
			CompanyID:  companyID,
			StaffID:    staffID,
			Period:     period,
			Salary:     salary,
			Bonus:      bonus,
			Deductions: deductions,
			NetPay:     ComputeNetPay(salary, bonus, deductions),
			Status:     payroll.PayrollStatusPending,
			Notes:      notes,
		})
	}

	if existing.IsPaid() {
		if existing.SameAmounts(salary, bonus, deductions) {
			return existing, nil
		}
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	existing.Salary = salary
	existing.Bonus = bonus
	existing.Deductions = deductions
	existing.NetPay = ComputeNetPay(salary, bonus, deductions)
	if notes != nil {
		existing.Notes = notes
	}
	return s.payrollRepo.UpdateAmounts(ctx, existing)
}

// ========== PAYMENT ==========

// MarkPaid moves a pending record to paid and posts exactly one ledger expense for its
// net pay. Both happen in one transaction; if either fails nothing is committed.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	accountID := s.expenseAccountID
	if req.AccountID != nil {
		accountID = *req.AccountID
	}

	var paid payroll.PayrollRecord
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.payrollRepo.GetByID(txCtx, req.ID, claims.CompanyID)
		if err != nil {
			return err
		}
		if record.IsPaid() {
			return payroll.ErrPayrollRecordAlreadyPaid
		}

		paid, err = s.payrollRepo.MarkPaid(txCtx, record.ID, claims.CompanyID, claims.UserID, s.now())
		if err != nil {
			return err
		}

		_, err = s.ledgerService.RecordExpense(txCtx, ledger.Expense{
			CompanyID:     claims.CompanyID,
			AccountID:     accountID,
			Amount:        record.NetPay,
			Description:   expenseDescription(record),
			ReferenceType: ledger.ReferenceTypePayroll,
			ReferenceID:   record.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to record payroll expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll marked paid",
		"payroll_id", paid.ID,
		"staff_id", paid.StaffID,
		"period", paid.Period,
		"net_pay", paid.NetPay.String(),
	)
	return s.respond(paid), nil
}

func expenseDescription(r payroll.PayrollRecord) string {
	if r.StaffName != nil {
		return fmt.Sprintf("Maaş ödemesi %s - %s", r.Period, *r.StaffName)
	}
	return fmt.Sprintf("Maaş ödemesi %s - %s", r.Period, r.StaffID)
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GenerateForPeriod(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.generateForCompany(ctx, claims.CompanyID, req.Period)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(created))
	for _, r := range created {
		responses = append(responses, s.respond(r))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GenerateForAllCompanies(ctx context.Context, period string) (int, error) {
	req := payroll.GeneratePayrollRequest{Period: period}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	companyIDs, err := s.staffRepo.ListCompanyIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list companies: %w", err)
	}

	total := 0
	var errs []error
	for _, companyID := range companyIDs {
		created, err := s.generateForCompany(ctx, companyID, period)
		if err != nil {
			slog.Error("Payroll generation failed", "company_id", companyID, "period", period, "error", err)
			errs = append(errs, fmt.Errorf("company %s: %w", companyID, err))
			continue
		}
		total += len(created)
	}
	return total, errors.Join(errs...)
}

// generateForCompany creates a Pending record with the base salary for every active
// staff member that has none for the period. Existing records are never touched.
func (s *PayrollServiceImpl) generateForCompany(ctx context.Context, companyID, period string) ([]payroll.PayrollRecord, error) {
	members, err := s.staffRepo.ListActive(ctx, companyID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	var created []payroll.PayrollRecord
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.payrollRepo.ListStaffIDsWithRecord(txCtx, period, companyID)
		if err != nil {
			return err
		}

		for _, m := range members {
			if _, ok := existing[m.ID]; ok {
				continue
			}
			record, err := s.upsert(txCtx, companyID, m.ID, period, s.baseSalary(m), decimal.Zero, decimal.Zero, nil)
			if err != nil {
				return fmt.Errorf("staff %s: %w", m.ID, err)
			}
			record.StaffName = &m.Name
			record.Branch = &m.Branch
			created = append(created, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payroll records generated", "company_id", companyID, "period", period, "count", len(created))
	return created, nil
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	records, err := s.payrollRepo.List(ctx, claims.CompanyID, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	result := payroll.ListPayrollResponse{
		Records:     make([]payroll.PayrollResponse, 0, len(records)),
		TotalNetPay: decimal.Zero,
	}
	if filter.Period != nil {
		result.Period = *filter.Period
	}

	staffSeen := make(map[string]struct{})
	for _, r := range records {
		result.Records = append(result.Records, payroll.ToResponse(r))
		result.TotalNetPay = result.TotalNetPay.Add(r.NetPay)
		staffSeen[r.StaffID] = struct{}{}
		if r.IsPaid() {
			result.PaidCount++
		}
	}
	result.StaffCount = len(staffSeen)

	return result, nil
}

func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(record), nil
}

// respond converts and logs the negative net pay warning.
func (s *PayrollServiceImpl) respond(r payroll.PayrollRecord) payroll.PayrollResponse {
	resp := payroll.ToResponse(r)
	if r.NetPay.IsNegative() {
		slog.Warn("Payroll net pay is negative", "payroll_id", r.ID, "staff_id", r.StaffID, "period", r.Period, "net_pay", r.NetPay.String())
	}
	return resp
}

// baseSalary falls back to the configured default for staff without a salary on file.
func (s *PayrollServiceImpl) baseSalary(member staff.Staff) decimal.Decimal {
	if member.Salary.IsPositive() {
		return member.Salary
	}
	return s.defaultSalary
}
