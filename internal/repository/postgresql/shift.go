package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (id, company_id, staff_id, start_at, end_at, type, branch, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at`

	s.ID = newID()
	err := q.QueryRow(ctx, query, s.ID, s.CompanyID, s.StaffID, s.Start, s.End, s.Type, s.Branch).Scan(&s.CreatedAt)
	if err != nil {
		return shift.ShiftAssignment{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return s, nil
}

func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepositoryImpl) ListOverlapping(ctx context.Context, companyID string, from, to time.Time) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sa.id, sa.company_id, sa.staff_id, sa.start_at, sa.end_at, sa.type, sa.branch, sa.created_at, s.name
		FROM shift_assignments sa
		INNER JOIN staff s ON s.id = sa.staff_id
		WHERE sa.company_id = $1 AND sa.start_at < $3 AND sa.end_at >= $2
		ORDER BY sa.start_at, sa.id`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.ShiftAssignment
	for rows.Next() {
		var s shift.ShiftAssignment
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.StaffID, &s.Start, &s.End, &s.Type, &s.Branch, &s.CreatedAt, &s.StaffName); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
