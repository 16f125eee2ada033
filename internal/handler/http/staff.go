package http

import (
	"net/http"

	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type StaffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &StaffHandlerImpl{staffService: staffService}
}

// List returns the active staff of the company, optionally limited to one branch.
func (h *StaffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffService.List(r.Context(), optionalQuery(r, "branch"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}
