package ledger

import (
	"context"
	"log/slog"

	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
)

type LedgerServiceImpl struct {
	ledgerRepo ledger.LedgerRepository
}

func NewLedgerService(ledgerRepo ledger.LedgerRepository) ledger.LedgerService {
	return &LedgerServiceImpl{ledgerRepo: ledgerRepo}
}

// RecordExpense debits the account and appends the ledger entry. Both writes join the
// caller's transaction through ctx, so the caller decides atomicity.
func (s *LedgerServiceImpl) RecordExpense(ctx context.Context, expense ledger.Expense) (ledger.Transaction, error) {
	if expense.AccountID == "" {
		return ledger.Transaction{}, ledger.ErrExpenseAccountUndefined
	}
	if !expense.Amount.IsPositive() {
		return ledger.Transaction{}, ledger.ErrNonPositiveExpense
	}

	if err := s.ledgerRepo.DebitAccount(ctx, expense.AccountID, expense.CompanyID, expense.Amount); err != nil {
		return ledger.Transaction{}, err
	}

	tx, err := s.ledgerRepo.InsertTransaction(ctx, ledger.Transaction{
		CompanyID:     expense.CompanyID,
		AccountID:     expense.AccountID,
		Type:          ledger.TransactionTypeExpense,
		Amount:        expense.Amount,
		Description:   expense.Description,
		ReferenceType: expense.ReferenceType,
		ReferenceID:   expense.ReferenceID,
	})
	if err != nil {
		return ledger.Transaction{}, err
	}

	slog.Info("Ledger expense recorded",
		"transaction_id", tx.ID,
		"account_id", tx.AccountID,
		"amount", tx.Amount.String(),
		"reference_type", tx.ReferenceType,
		"reference_id", tx.ReferenceID,
	)
	return tx, nil
}
