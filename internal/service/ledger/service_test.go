package ledger

import (
	"context"
	"testing"

	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerRepo struct {
	debited      map[string]decimal.Decimal
	transactions []ledger.Transaction
	references   map[string]bool
}

func newFakeLedgerRepo(accountIDs ...string) *fakeLedgerRepo {
	repo := &fakeLedgerRepo{debited: map[string]decimal.Decimal{}, references: map[string]bool{}}
	for _, id := range accountIDs {
		repo.debited[id] = decimal.Zero
	}
	return repo
}

func (f *fakeLedgerRepo) DebitAccount(ctx context.Context, accountID string, companyID string, amount decimal.Decimal) error {
	current, ok := f.debited[accountID]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	f.debited[accountID] = current.Add(amount)
	return nil
}

func (f *fakeLedgerRepo) InsertTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	key := tx.ReferenceType + "/" + tx.ReferenceID
	if f.references[key] {
		return ledger.Transaction{}, ledger.ErrDuplicateReference
	}
	f.references[key] = true
	tx.ID = "tx-1"
	f.transactions = append(f.transactions, tx)
	return tx, nil
}

func payrollExpense(amount int64) ledger.Expense {
	return ledger.Expense{
		CompanyID:     "company-1",
		AccountID:     "kasa",
		Amount:        decimal.NewFromInt(amount),
		Description:   "Maaş Ödemesi - Ayşe Yılmaz (2026-02)",
		ReferenceType: ledger.ReferenceTypePayroll,
		ReferenceID:   "payroll-1",
	}
}

func TestRecordExpense(t *testing.T) {
	repo := newFakeLedgerRepo("kasa")
	svc := NewLedgerService(repo)

	tx, err := svc.RecordExpense(context.Background(), payrollExpense(17802))
	require.NoError(t, err)

	assert.Equal(t, ledger.TransactionTypeExpense, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(17802)))
	assert.Equal(t, "payroll-1", tx.ReferenceID)
	assert.True(t, repo.debited["kasa"].Equal(decimal.NewFromInt(17802)))
	assert.Len(t, repo.transactions, 1)
}

func TestRecordExpense_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		expense ledger.Expense
		wantErr error
	}{
		{"missing account", func() ledger.Expense { e := payrollExpense(100); e.AccountID = ""; return e }(), ledger.ErrExpenseAccountUndefined},
		{"zero amount", payrollExpense(0), ledger.ErrNonPositiveExpense},
		{"negative amount", payrollExpense(-5), ledger.ErrNonPositiveExpense},
		{"unknown account", func() ledger.Expense { e := payrollExpense(100); e.AccountID = "banka"; return e }(), ledger.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLedgerRepo("kasa")
			_, err := NewLedgerService(repo).RecordExpense(context.Background(), tt.expense)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.transactions)
		})
	}
}

func TestRecordExpense_DuplicateReference(t *testing.T) {
	repo := newFakeLedgerRepo("kasa")
	svc := NewLedgerService(repo)

	_, err := svc.RecordExpense(context.Background(), payrollExpense(100))
	require.NoError(t, err)

	_, err = svc.RecordExpense(context.Background(), payrollExpense(100))
	assert.ErrorIs(t, err, ledger.ErrDuplicateReference)
	assert.Len(t, repo.transactions, 1)
}
