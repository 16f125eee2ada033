package attendance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "0190a000-0000-7000-8000-000000000001"
	testStaffID   = "0190a000-0000-7000-8000-000000000011"
)

func claimsContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "0190a000-0000-7000-8000-0000000000aa",
		"company_id": testCompanyID,
		"role":       "staff",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeStaffRepo struct {
	members map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string, companyID string) (staff.Staff, error) {
	m, ok := f.members[id]
	if !ok || m.CompanyID != companyID {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return m, nil
}

func (f *fakeStaffRepo) ListActive(ctx context.Context, companyID string, branch *string) ([]staff.Staff, error) {
	return nil, nil
}

func (f *fakeStaffRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return []string{testCompanyID}, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.AttendanceRecord
	seq     int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.AttendanceRecord{}}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.seq++
	r.ID = fmt.Sprintf("att-%d", f.seq)
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.AttendanceRecord, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != companyID {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetOpenRecord(ctx context.Context, staffID string, companyID string) (attendance.AttendanceRecord, error) {
	for _, r := range f.records {
		if r.StaffID == staffID && r.CompanyID == companyID && r.IsOpen() {
			return r, nil
		}
	}
	return attendance.AttendanceRecord{}, attendance.ErrNotCheckedIn
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, r attendance.AttendanceRecord) error {
	if _, ok := f.records[r.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[r.ID] = r
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string, companyID string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, companyID string, staffID *string) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, r := range f.records {
		if staffID != nil && r.StaffID != *staffID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}
