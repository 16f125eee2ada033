package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/target"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/jwt"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestCompanyID = "0190a000-0000-7000-8000-000000000001"
	handlerTestStaffID   = "0190a000-0000-7000-8000-000000000011"
)

type stubStaffService struct{}

func (stubStaffService) List(ctx context.Context, branch *string) ([]staff.StaffResponse, error) {
	return []staff.StaffResponse{{ID: handlerTestStaffID, Name: "Ayşe Yılmaz"}}, nil
}

type stubAttendanceService struct {
	attendance.AttendanceService
	err error
}

func (s stubAttendanceService) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.AttendanceResponse, error) {
	if s.err != nil {
		return attendance.AttendanceResponse{}, s.err
	}
	return attendance.AttendanceResponse{ID: "att-1", StaffID: req.StaffID, IsOpen: true}, nil
}

type stubShiftService struct{ shift.ShiftService }

func (stubShiftService) PlanWeek(ctx context.Context, req shift.PlanWeekRequest) ([]shift.ShiftResponse, error) {
	return []shift.ShiftResponse{{ID: "s1", StaffID: req.StaffID, Type: string(shift.ShiftTypeNormal)}}, nil
}

type stubLeaveService struct {
	leave.LeaveService
	got leave.UpdateLeaveStatusRequest
}

func (s *stubLeaveService) UpdateStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	s.got = req
	return leave.LeaveResponse{ID: req.ID, Status: req.Status}, nil
}

type stubPuantajService struct{}

func (stubPuantajService) GetMonthly(ctx context.Context, req puantaj.MonthlyRequest) ([]puantaj.MonthlySummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []puantaj.MonthlySummary{{StaffID: handlerTestStaffID, Period: req.Period, WorkedDays: 1}}, nil
}

func (stubPuantajService) GetForStaff(ctx context.Context, staffID string, period string) (puantaj.MonthlySummary, error) {
	return puantaj.MonthlySummary{StaffID: staffID, Period: period}, nil
}

func (stubPuantajService) Export(ctx context.Context, req puantaj.MonthlyRequest) ([]byte, error) {
	return []byte("xlsx-bytes"), nil
}

type stubTargetService struct{ target.TargetService }

type stubPayrollService struct {
	payroll.PayrollService
	markPaidErr error
}

func (s stubPayrollService) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PayrollResponse, error) {
	if s.markPaidErr != nil {
		return payroll.PayrollResponse{}, s.markPaidErr
	}
	return payroll.PayrollResponse{ID: req.ID, Status: string(payroll.PayrollStatusPaid), NetPay: decimal.NewFromInt(17002)}, nil
}

type testServer struct {
	router     http.Handler
	jwtService jwt.Service
	leave      *stubLeaveService
}

func newTestServer(t *testing.T, attendanceErr, markPaidErr error) testServer {
	t.Helper()
	jwtService := mustJWTService(t)

	leaveSvc := &stubLeaveService{}
	router := NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewStaffHandler(stubStaffService{}),
		NewAttendanceHandler(stubAttendanceService{err: attendanceErr}),
		NewShiftHandler(stubShiftService{}),
		NewLeaveHandler(leaveSvc),
		NewPuantajHandler(stubPuantajService{}),
		NewTargetHandler(stubTargetService{}),
		NewPayrollHandler(stubPayrollService{markPaidErr: markPaidErr}),
	)
	return testServer{router: router, jwtService: jwtService, leave: leaveSvc}
}

func mustJWTService(t *testing.T) jwt.Service {
	t.Helper()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)
	return jwtService
}

func (s testServer) do(t *testing.T, method, path string, role user.Role, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if role != "" {
		token, _, err := s.jwtService.GenerateAccessToken("0190a000-0000-7000-8000-0000000000aa", handlerTestCompanyID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthReportsDatabaseFailure(t *testing.T) {
	router := NewRouter(
		RouterOptions{HealthCheck: func(context.Context) error { return errors.New("connection refused") }},
		mustJWTService(t),
		NewStaffHandler(stubStaffService{}),
		NewAttendanceHandler(stubAttendanceService{}),
		NewShiftHandler(stubShiftService{}),
		NewLeaveHandler(&stubLeaveService{}),
		NewPuantajHandler(stubPuantajService{}),
		NewTargetHandler(stubTargetService{}),
		NewPayrollHandler(stubPayrollService{}),
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", decodeResponse(t, rec).Error.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/api/v1/staff", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PermissionChecks(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	tests := []struct {
		name   string
		method string
		path   string
		role   user.Role
		want   int
	}{
		{"staff cannot list staff", http.MethodGet, "/api/v1/staff", user.RoleStaff, http.StatusForbidden},
		{"manager lists staff", http.MethodGet, "/api/v1/staff", user.RoleManager, http.StatusOK},
		{"staff cannot view puantaj", http.MethodGet, "/api/v1/puantaj?period=2026-02", user.RoleStaff, http.StatusForbidden},
		{"manager views puantaj", http.MethodGet, "/api/v1/puantaj?period=2026-02", user.RoleManager, http.StatusOK},
		{"staff cannot plan shifts", http.MethodPost, "/api/v1/shifts/week", user.RoleStaff, http.StatusForbidden},
		{"manager cannot pay", http.MethodPost, "/api/v1/payrolls/p1/pay", user.RoleManager, http.StatusForbidden},
		{"owner pays", http.MethodPost, "/api/v1/payrolls/p1/pay", user.RoleOwner, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.role, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestPuantajHandler_InvalidPeriod(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/api/v1/puantaj?period=Feb", user.RoleManager, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "period")
}

func TestPuantajHandler_Export(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/api/v1/puantaj/export?period=2026-02", user.RoleOwner, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "puantaj-2026-02.xlsx")
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestPuantajHandler_GetForStaff_InvalidID(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/api/v1/puantaj/not-a-uuid?period=2026-02", user.RoleOwner, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_RecordEvent(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/events", user.RoleStaff, map[string]string{
		"staff_id": handlerTestStaffID,
		"type":     "CHECK_IN",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	conflict := newTestServer(t, attendance.ErrAlreadyCheckedIn, nil)
	rec = conflict.do(t, http.MethodPost, "/api/v1/attendance/events", user.RoleStaff, map[string]string{
		"staff_id": handlerTestStaffID,
		"type":     "CHECK_IN",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_InvalidBody(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/events", bytes.NewBufferString("{"))
	token, _, err := srv.jwtService.GenerateAccessToken("u", handlerTestCompanyID, user.RoleStaff)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodPatch, "/api/v1/leaves/l1/status", user.RoleManager, map[string]string{"status": "approved"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "l1", srv.leave.got.ID)
	assert.Equal(t, "approved", srv.leave.got.Status)
}

func TestPayrollHandler_MarkPaidErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"already paid", payroll.ErrPayrollRecordAlreadyPaid, http.StatusConflict},
		{"missing", payroll.ErrPayrollRecordNotFound, http.StatusNotFound},
		{"validation", validator.ValidationErrors{{Field: "account_id", Message: "bad"}}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil, tt.err)
			rec := srv.do(t, http.MethodPost, "/api/v1/payrolls/p1/pay", user.RoleOwner, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_PlanWeek(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.do(t, http.MethodPost, "/api/v1/shifts/week", user.RoleManager, map[string]string{
		"staff_id":   handlerTestStaffID,
		"template":   "morning",
		"week_start": "2026-02-02",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Week planned successfully", resp.Message)
}
