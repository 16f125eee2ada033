package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
)

const ReferenceTypePayroll = "payroll"

type Account struct {
	ID        string
	CompanyID string
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is an immutable entry of the financial ledger. At most one transaction
// exists per (ReferenceType, ReferenceID).
type Transaction struct {
	ID            string
	CompanyID     string
	AccountID     string
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	ReferenceType string
	ReferenceID   string
	CreatedAt     time.Time
}

// Expense is the input to a ledger debit.
type Expense struct {
	CompanyID     string
	AccountID     string
	Amount        decimal.Decimal
	Description   string
	ReferenceType string
	ReferenceID   string
}
