package shift

import "context"

type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ShiftFilter) ([]ShiftResponse, error)
	PlanWeek(ctx context.Context, req PlanWeekRequest) ([]ShiftResponse, error)
}
