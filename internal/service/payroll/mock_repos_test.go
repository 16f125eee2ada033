package payroll

import (
	"context"
	"fmt"
	"maps"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "0190a000-0000-7000-8000-000000000001"
	testUserID    = "0190a000-0000-7000-8000-0000000000aa"
	testAccountID = "0190a000-0000-7000-8000-0000000000ac"
)

func claimsContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    testUserID,
		"company_id": testCompanyID,
		"role":       "owner",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// fakeTx restores every participant's state when fn fails, like a rollback.
type fakeTx struct {
	participants []interface{ snapshot() func() }
	commits      int
	rollbacks    int
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	restores := make([]func(), 0, len(f.participants))
	for _, p := range f.participants {
		restores = append(restores, p.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fakeStaffRepo struct {
	members []staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string, companyID string) (staff.Staff, error) {
	for _, m := range f.members {
		if m.ID == id && m.CompanyID == companyID {
			return m, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (f *fakeStaffRepo) ListActive(ctx context.Context, companyID string, branch *string) ([]staff.Staff, error) {
	var out []staff.Staff
	for _, m := range f.members {
		if m.CompanyID != companyID || !m.IsActive {
			continue
		}
		if branch != nil && m.Branch != *branch {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStaffRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var ids []string
	for _, m := range f.members {
		if _, ok := seen[m.CompanyID]; !ok {
			seen[m.CompanyID] = struct{}{}
			ids = append(ids, m.CompanyID)
		}
	}
	return ids, nil
}

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	seq     int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: map[string]payroll.PayrollRecord{}}
}

func (f *fakePayrollRepo) snapshot() func() {
	saved := maps.Clone(f.records)
	return func() { f.records = saved }
}

func (f *fakePayrollRepo) Create(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	for _, existing := range f.records {
		if existing.StaffID == r.StaffID && existing.Period == r.Period && existing.CompanyID == r.CompanyID {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordExists
		}
	}
	f.seq++
	r.ID = fmt.Sprintf("payroll-%d", f.seq)
	f.records[r.ID] = r
	return r, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) GetByStaffPeriod(ctx context.Context, staffID, period, companyID string) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.StaffID == staffID && r.Period == period && r.CompanyID == companyID {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) UpdateAmounts(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	current, ok := f.records[r.ID]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if current.IsPaid() {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
	}
	f.records[r.ID] = r
	return r, nil
}

func (f *fakePayrollRepo) MarkPaid(ctx context.Context, id, companyID, paidBy string, paidAt time.Time) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != companyID || r.IsPaid() {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
	}
	r.Status = payroll.PayrollStatusPaid
	r.PaidAt = &paidAt
	r.PaidBy = &paidBy
	f.records[id] = r
	return r, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if r.CompanyID != companyID {
			continue
		}
		if filter.Period != nil && r.Period != *filter.Period {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayrollRepo) ListStaffIDsWithRecord(ctx context.Context, period, companyID string) (map[string]struct{}, error) {
	ids := map[string]struct{}{}
	for _, r := range f.records {
		if r.Period == period && r.CompanyID == companyID {
			ids[r.StaffID] = struct{}{}
		}
	}
	return ids, nil
}

// fakeLedger records every expense; failWith makes the next calls fail.
type fakeLedger struct {
	expenses []ledger.Expense
	failWith error
}

func (f *fakeLedger) snapshot() func() {
	saved := append([]ledger.Expense(nil), f.expenses...)
	return func() { f.expenses = saved }
}

func (f *fakeLedger) RecordExpense(ctx context.Context, e ledger.Expense) (ledger.Transaction, error) {
	if f.failWith != nil {
		return ledger.Transaction{}, f.failWith
	}
	if !e.Amount.IsPositive() {
		return ledger.Transaction{}, ledger.ErrNonPositiveExpense
	}
	f.expenses = append(f.expenses, e)
	return ledger.Transaction{ID: fmt.Sprintf("tx-%d", len(f.expenses)), Amount: e.Amount}, nil
}

type payrollFixture struct {
	svc    *PayrollServiceImpl
	repo   *fakePayrollRepo
	ledger *fakeLedger
	tx     *fakeTx
	staff  *fakeStaffRepo
}

func newPayrollFixture(members ...staff.Staff) payrollFixture {
	repo := newFakePayrollRepo()
	led := &fakeLedger{}
	tx := &fakeTx{participants: []interface{ snapshot() func() }{repo, led}}
	staffRepo := &fakeStaffRepo{members: members}

	svc := NewPayrollService(tx, repo, staffRepo, led, testAccountID, decimal.NewFromInt(17002)).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	return payrollFixture{svc: svc, repo: repo, ledger: led, tx: tx, staff: staffRepo}
}

func member(id, name string, salary int64) staff.Staff {
	return staff.Staff{
		ID:        id,
		CompanyID: testCompanyID,
		Name:      name,
		Branch:    "Merkez",
		Salary:    decimal.NewFromInt(salary),
		IsActive:  true,
	}
}
