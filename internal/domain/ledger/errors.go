package ledger

import "errors"

var (
	ErrAccountNotFound         = errors.New("ledger account not found")
	ErrDuplicateReference      = errors.New("ledger already holds a transaction for this reference")
	ErrNonPositiveExpense      = errors.New("expense amount must be greater than zero")
	ErrExpenseAccountUndefined = errors.New("no expense account configured")
)
