package target

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/target"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
)

type TargetServiceImpl struct {
	targetRepo target.TargetRepository
	staffRepo  staff.StaffRepository
}

func NewTargetService(targetRepo target.TargetRepository, staffRepo staff.StaffRepository) target.TargetService {
	return &TargetServiceImpl{
		targetRepo: targetRepo,
		staffRepo:  staffRepo,
	}
}

func (s *TargetServiceImpl) Create(ctx context.Context, req target.CreateTargetRequest) (target.TargetResponse, error) {
	if err := req.Validate(); err != nil {
		return target.TargetResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return target.TargetResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, claims.CompanyID)
	if err != nil {
		return target.TargetResponse{}, err
	}

	commission := decimal.Zero
	if req.CommissionRate != nil {
		commission = *req.CommissionRate
	}
	bonus := decimal.Zero
	if req.BonusAmount != nil {
		bonus = *req.BonusAmount
	}

	created, err := s.targetRepo.Create(ctx, target.PerformanceTarget{
		CompanyID:      claims.CompanyID,
		StaffID:        member.ID,
		Type:           target.TargetType(req.Type),
		TargetValue:    req.TargetValue,
		CurrentValue:   decimal.Zero,
		StartDate:      req.ParsedStart,
		EndDate:        req.ParsedEnd,
		Period:         req.Period,
		CommissionRate: commission,
		BonusAmount:    bonus,
		Status:         target.StatusActive,
	})
	if err != nil {
		return target.TargetResponse{}, fmt.Errorf("failed to create target: %w", err)
	}

	created.StaffName = &member.Name
	return toResponse(created), nil
}

func (s *TargetServiceImpl) ListWithProgress(ctx context.Context, staffID *string) ([]target.TargetResponse, error) {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := s.targetRepo.List(ctx, claims.CompanyID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}

	responses := make([]target.TargetResponse, 0, len(targets))
	for _, t := range targets {
		resp := toResponse(t)
		if len(resp.Warnings) > 0 {
			slog.Warn("Target computation warning", "target_id", t.ID, "staff_id", t.StaffID, "progress", resp.Progress)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func toResponse(t target.PerformanceTarget) target.TargetResponse {
	eval := Evaluate(t)
	staffName := ""
	if t.StaffName != nil {
		staffName = *t.StaffName
	}
	return target.TargetResponse{
		ID:               t.ID,
		StaffID:          t.StaffID,
		StaffName:        staffName,
		Type:             string(t.Type),
		TargetValue:      t.TargetValue,
		CurrentValue:     t.CurrentValue,
		StartDate:        t.StartDate.Format("2006-01-02"),
		EndDate:          t.EndDate.Format("2006-01-02"),
		Period:           t.Period,
		CommissionRate:   t.CommissionRate,
		BonusAmount:      t.BonusAmount,
		Status:           t.Status,
		Progress:         eval.Progress,
		ProgressBarWidth: eval.ProgressBarWidth,
		EstimatedBonus:   eval.EstimatedBonus,
		Warnings:         eval.Warnings,
	}
}
