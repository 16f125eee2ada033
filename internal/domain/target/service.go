package target

import "context"

type TargetService interface {
	Create(ctx context.Context, req CreateTargetRequest) (TargetResponse, error)
	ListWithProgress(ctx context.Context, staffID *string) ([]TargetResponse, error)
}
