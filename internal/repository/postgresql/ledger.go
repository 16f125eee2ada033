package postgresql

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type ledgerRepositoryImpl struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}

func (r *ledgerRepositoryImpl) DebitAccount(ctx context.Context, accountID string, companyID string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE ledger_accounts SET balance = balance - $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2`, accountID, companyID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit ledger account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (r *ledgerRepositoryImpl) InsertTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ledger_transactions (
			id, company_id, account_id, type, amount, description, reference_type, reference_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at`

	tx.ID = newID()
	err := q.QueryRow(ctx, query,
		tx.ID, tx.CompanyID, tx.AccountID, tx.Type, tx.Amount, tx.Description, tx.ReferenceType, tx.ReferenceID,
	).Scan(&tx.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ledger.Transaction{}, ledger.ErrDuplicateReference
		}
		return ledger.Transaction{}, fmt.Errorf("failed to insert ledger transaction: %w", err)
	}
	return tx, nil
}
