package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/retail-erp/workforce-backend-go/internal/domain/target"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
)

type TargetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListWithProgress(w http.ResponseWriter, r *http.Request)
}

type TargetHandlerImpl struct {
	targetService target.TargetService
}

func NewTargetHandler(targetService target.TargetService) TargetHandler {
	return &TargetHandlerImpl{targetService: targetService}
}

func (h *TargetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req target.CreateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTarget decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.targetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Performance target created successfully", created)
}

// ListWithProgress returns targets with progress, bar width and estimated bonus.
func (h *TargetHandlerImpl) ListWithProgress(w http.ResponseWriter, r *http.Request) {
	staffID, ok := staffIDQuery(r)
	if !ok {
		response.BadRequest(w, "staff_id must be a valid UUID", nil)
		return
	}

	targets, err := h.targetService.ListWithProgress(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, targets)
}
