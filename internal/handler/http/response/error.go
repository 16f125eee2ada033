package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/target"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Token is not bound to a company")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Not found
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, target.ErrTargetNotFound):
		NotFound(w, "Performance target not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, ledger.ErrAccountNotFound):
		NotFound(w, "Ledger account not found")

	// Invalid state
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Staff is already checked in")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Staff has no open attendance record")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrPayrollRecordExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, ledger.ErrDuplicateReference):
		Conflict(w, "Payroll record already has a ledger entry")

	// Field level
	case errors.Is(err, attendance.ErrCheckOutBeforeStart):
		ValidationError(w, map[string]string{"check_out": err.Error()})
	case errors.Is(err, period.ErrInvalidPeriod):
		ValidationError(w, map[string]string{"period": period.ErrInvalidPeriod.Error()})
	case errors.Is(err, ledger.ErrNonPositiveExpense):
		ValidationError(w, map[string]string{"net_pay": err.Error()})
	case errors.Is(err, ledger.ErrExpenseAccountUndefined):
		ValidationError(w, map[string]string{"account_id": err.Error()})

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
