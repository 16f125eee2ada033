package staff

import "context"

type StaffService interface {
	List(ctx context.Context, branch *string) ([]StaffResponse, error)
}
