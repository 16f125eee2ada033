package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `id, company_id, name, branch, role, salary, is_active, created_at, updated_at, deleted_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID,
		&s.CompanyID,
		&s.Name,
		&s.Branch,
		&s.Role,
		&s.Salary,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	return s, err
}

func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + `
		FROM staff
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	s, err := scanStaff(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return s, nil
}

func (r *staffRepositoryImpl) ListActive(ctx context.Context, companyID string, branch *string) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + `
		FROM staff
		WHERE company_id = $1 AND is_active AND deleted_at IS NULL
		  AND ($2::text IS NULL OR branch = $2)
		ORDER BY name, id`

	rows, err := q.Query(ctx, query, companyID, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *staffRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT company_id::text
		FROM staff
		WHERE is_active AND deleted_at IS NULL
		ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
