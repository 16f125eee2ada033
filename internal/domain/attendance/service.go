package attendance

import "context"

type AttendanceService interface {
	RecordEvent(ctx context.Context, req RecordEventRequest) (AttendanceResponse, error)
	List(ctx context.Context, staffID *string) ([]AttendanceResponse, error)
	Correct(ctx context.Context, req CorrectAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}
