package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PuantajHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
	GetForStaff(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type PuantajHandlerImpl struct {
	puantajService puantaj.PuantajService
}

func NewPuantajHandler(puantajService puantaj.PuantajService) PuantajHandler {
	return &PuantajHandlerImpl{puantajService: puantajService}
}

// GetMonthly serves GET /puantaj?period=YYYY-MM&branch=
func (h *PuantajHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	req := puantaj.MonthlyRequest{
		Period: r.URL.Query().Get("period"),
		Branch: optionalQuery(r, "branch"),
	}

	summaries, err := h.puantajService.GetMonthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

func (h *PuantajHandlerImpl) GetForStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	if !validator.IsValidUUID(staffID) {
		response.BadRequest(w, "Staff ID must be a valid UUID", nil)
		return
	}

	summary, err := h.puantajService.GetForStaff(r.Context(), staffID, r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Export streams the monthly grid as an xlsx download.
func (h *PuantajHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := puantaj.MonthlyRequest{
		Period: r.URL.Query().Get("period"),
		Branch: optionalQuery(r, "branch"),
	}

	data, err := h.puantajService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "puantaj-"+req.Period+".xlsx", xlsxContentType, data)
}
