package postgresql

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/domain/target"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type targetRepositoryImpl struct {
	db *database.DB
}

func NewTargetRepository(db *database.DB) target.TargetRepository {
	return &targetRepositoryImpl{db: db}
}

func (r *targetRepositoryImpl) Create(ctx context.Context, t target.PerformanceTarget) (target.PerformanceTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_targets (
			id, company_id, staff_id, type, target_value, current_value, start_date, end_date,
			period, commission_rate, bonus_amount, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at`

	t.ID = newID()
	err := q.QueryRow(ctx, query,
		t.ID, t.CompanyID, t.StaffID, t.Type, t.TargetValue, t.CurrentValue, t.StartDate, t.EndDate,
		t.Period, t.CommissionRate, t.BonusAmount, t.Status,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return target.PerformanceTarget{}, fmt.Errorf("failed to create target: %w", err)
	}
	return t, nil
}

func (r *targetRepositoryImpl) List(ctx context.Context, companyID string, staffID *string) ([]target.PerformanceTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pt.id, pt.company_id, pt.staff_id, pt.type, pt.target_value, pt.current_value,
			   pt.start_date, pt.end_date, pt.period, pt.commission_rate, pt.bonus_amount, pt.status,
			   pt.created_at, pt.updated_at, s.name
		FROM performance_targets pt
		INNER JOIN staff s ON s.id = pt.staff_id
		WHERE pt.company_id = $1 AND ($2::uuid IS NULL OR pt.staff_id = $2)
		ORDER BY pt.created_at DESC`

	rows, err := q.Query(ctx, query, companyID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []target.PerformanceTarget
	for rows.Next() {
		var t target.PerformanceTarget
		err := rows.Scan(
			&t.ID,
			&t.CompanyID,
			&t.StaffID,
			&t.Type,
			&t.TargetValue,
			&t.CurrentValue,
			&t.StartDate,
			&t.EndDate,
			&t.Period,
			&t.CommissionRate,
			&t.BonusAmount,
			&t.Status,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.StaffName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (r *targetRepositoryImpl) UpdateCurrentValue(ctx context.Context, id string, companyID string, value decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE performance_targets SET current_value = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2`, id, companyID, value)
	if err != nil {
		return fmt.Errorf("failed to update target current value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return target.ErrTargetNotFound
	}
	return nil
}
