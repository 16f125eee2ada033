package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerRepository writes through the caller's transaction when one is present in ctx.
type LedgerRepository interface {
	// DebitAccount decreases the balance; returns ErrAccountNotFound for unknown accounts.
	DebitAccount(ctx context.Context, accountID string, companyID string, amount decimal.Decimal) error
	// InsertTransaction returns ErrDuplicateReference when the reference already exists.
	InsertTransaction(ctx context.Context, tx Transaction) (Transaction, error)
}
