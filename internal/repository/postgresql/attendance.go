package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.company_id, a.staff_id, a.date, a.check_in, a.check_out,
		   a.location_in, a.location_out, a.working_hours::float8, a.created_at, a.updated_at,
		   s.name
	FROM attendance_records a
	INNER JOIN staff s ON s.id = a.staff_id`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var a attendance.AttendanceRecord
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.StaffID,
		&a.Date,
		&a.CheckIn,
		&a.CheckOut,
		&a.LocationIn,
		&a.LocationOut,
		&a.WorkingHours,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.StaffName,
	)
	return a, err
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, company_id, staff_id, date, check_in, check_out,
			location_in, location_out, working_hours, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	record.ID = newID()
	err := q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.StaffID, record.Date, record.CheckIn, record.CheckOut,
		record.LocationIn, record.LocationOut, record.WorkingHours,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return record, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+`
		WHERE a.id = $1 AND a.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) GetOpenRecord(ctx context.Context, staffID string, companyID string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	// FOR UPDATE serialises concurrent events of the same staff member
	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+`
		WHERE a.staff_id = $1 AND a.company_id = $2 AND a.check_out IS NULL
		FOR UPDATE OF a`, staffID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET date = $3, check_in = $4, check_out = $5, location_in = $6, location_out = $7,
			working_hours = $8, updated_at = NOW()
		WHERE id = $1 AND company_id = $2`

	tag, err := q.Exec(ctx, query,
		record.ID, record.CompanyID, record.Date, record.CheckIn, record.CheckOut,
		record.LocationIn, record.LocationOut, record.WorkingHours,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, staffID *string) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+`
		WHERE a.company_id = $1 AND ($2::uuid IS NULL OR a.staff_id = $2)
		ORDER BY a.check_in DESC`, companyID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+`
		WHERE a.company_id = $1 AND a.date >= $2::date AND a.date < $3::date
		ORDER BY a.staff_id, a.check_in`, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date range: %w", err)
	}
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
