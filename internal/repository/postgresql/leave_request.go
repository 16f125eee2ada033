package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT lr.id, lr.company_id, lr.staff_id, lr.type, lr.start_date, lr.end_date, lr.status,
		   lr.reason, lr.approved_by, lr.approved_at, lr.created_at, lr.updated_at, s.name
	FROM leave_requests lr
	INNER JOIN staff s ON s.id = lr.staff_id`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.CompanyID,
		&lr.StaffID,
		&lr.Type,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Status,
		&lr.Reason,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.StaffName,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, company_id, staff_id, type, start_date, end_date, status, reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	request.ID = newID()
	err := q.QueryRow(ctx, query,
		request.ID, request.CompanyID, request.StaffID, request.Type,
		request.StartDate, request.EndDate, request.Status, request.Reason,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeave(q.QueryRow(ctx, leaveSelect+`
		WHERE lr.id = $1 AND lr.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, companyID string, staffID *string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelect+`
		WHERE lr.company_id = $1 AND ($2::uuid IS NULL OR lr.staff_id = $2)
		ORDER BY lr.created_at DESC`, companyID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaves(rows)
}

func (r *leaveRequestRepositoryImpl) ListOverlapping(ctx context.Context, companyID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelect+`
		WHERE lr.company_id = $1 AND lr.start_date <= $3::date AND lr.end_date >= $2::date
		ORDER BY lr.staff_id, lr.start_date`, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping leave requests: %w", err)
	}
	return collectLeaves(rows)
}

// UpdateStatus only touches pending rows so two approvers cannot both win.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status leave.LeaveRequestStatus, approvedBy string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $3, approved_by = $4, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'pending'`,
		id, companyID, status, approvedBy)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if tag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	return current, nil
}

func collectLeaves(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}
