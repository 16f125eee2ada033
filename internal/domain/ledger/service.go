package ledger

import "context"

// LedgerService is the financial ledger collaborator used by payroll.
type LedgerService interface {
	RecordExpense(ctx context.Context, expense Expense) (Transaction, error)
}
