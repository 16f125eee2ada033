package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/payroll"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	GetPayrollRecord(w http.ResponseWriter, r *http.Request)
	UpsertPayrollRecord(w http.ResponseWriter, r *http.Request)
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{
		payrollService: payrollService,
	}
}

// ListPayrollRecords serves GET /payrolls?period=&staff_id=&status=
func (h *PayrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	staffID, ok := staffIDQuery(r)
	if !ok {
		response.BadRequest(w, "staff_id must be a valid UUID", nil)
		return
	}

	filter := payroll.PayrollFilter{
		Period:  optionalQuery(r, "period"),
		StaffID: staffID,
		Status:  optionalQuery(r, "status"),
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PayrollHandlerImpl) GetPayrollRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	record, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// UpsertPayrollRecord creates or updates the record for (staff, period).
func (h *PayrollHandlerImpl) UpsertPayrollRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertPayroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.payrollService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record saved successfully", record)
}

func (h *PayrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GeneratePayroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	records, err := h.payrollService.GenerateForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll records generated successfully", records)
}

// MarkPaid settles a pending record and books the ledger expense. The body is optional.
func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("MarkPaid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	record, err := h.payrollService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", record)
}
