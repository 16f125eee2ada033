package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollSelect = `
	SELECT pr.id, pr.company_id, pr.staff_id, pr.period, pr.salary, pr.bonus, pr.deductions, pr.net_pay,
		   pr.status, pr.paid_at, pr.paid_by, pr.notes, pr.created_at, pr.updated_at, s.name, s.branch
	FROM payroll_records pr
	INNER JOIN staff s ON s.id = pr.staff_id`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var pr payroll.PayrollRecord
	err := row.Scan(
		&pr.ID,
		&pr.CompanyID,
		&pr.StaffID,
		&pr.Period,
		&pr.Salary,
		&pr.Bonus,
		&pr.Deductions,
		&pr.NetPay,
		&pr.Status,
		&pr.PaidAt,
		&pr.PaidBy,
		&pr.Notes,
		&pr.CreatedAt,
		&pr.UpdatedAt,
		&pr.StaffName,
		&pr.Branch,
	)
	return pr, err
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, company_id, staff_id, period, salary, bonus, deductions, net_pay,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	record.ID = newID()
	err := q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.StaffID, record.Period,
		record.Salary, record.Bonus, record.Deductions, record.NetPay,
		record.Status, record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return record, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	pr, err := scanPayroll(q.QueryRow(ctx, payrollSelect+`
		WHERE pr.id = $1 AND pr.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return pr, nil
}

func (r *payrollRepositoryImpl) GetByStaffPeriod(ctx context.Context, staffID string, period string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	pr, err := scanPayroll(q.QueryRow(ctx, payrollSelect+`
		WHERE pr.staff_id = $1 AND pr.period = $2 AND pr.company_id = $3
		FOR UPDATE OF pr`, staffID, period, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}
	return pr, nil
}

func (r *payrollRepositoryImpl) UpdateAmounts(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET salary = $3, bonus = $4, deductions = $5, net_pay = $6, notes = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'pending'
		RETURNING updated_at`

	err := q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.Salary, record.Bonus, record.Deductions, record.NetPay, record.Notes,
	).Scan(&record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}
	return record, nil
}

func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, id string, companyID string, paidBy string, paidAt time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_records
		SET status = 'paid', paid_at = $3, paid_by = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'pending'`,
		id, companyID, paidAt, paidBy)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to mark payroll paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
	}
	return r.GetByID(ctx, id, companyID)
}

func (r *payrollRepositoryImpl) List(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"pr.company_id = $1"}
	args := []interface{}{companyID}

	if filter.Period != nil {
		args = append(args, *filter.Period)
		conditions = append(conditions, fmt.Sprintf("pr.period = $%d", len(args)))
	}
	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		conditions = append(conditions, fmt.Sprintf("pr.staff_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", len(args)))
	}

	query := payrollSelect + `
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY pr.period DESC, s.name, pr.id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		pr, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, pr)
	}
	return records, rows.Err()
}

func (r *payrollRepositoryImpl) ListStaffIDsWithRecord(ctx context.Context, period string, companyID string) (map[string]struct{}, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT staff_id::text FROM payroll_records
		WHERE company_id = $1 AND period = $2`, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll staff ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}
