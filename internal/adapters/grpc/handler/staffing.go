package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	staffingpb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/grpc/api/staffing/v1"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

// StaffingGrpcHandler は StaffingService の gRPC 実装です。
type StaffingGrpcHandler struct {
	svc staffing.UseCase
}

// NewStaffingGrpcHandler は StaffingGrpcHandler を生成します。
func NewStaffingGrpcHandler(svc staffing.UseCase) *StaffingGrpcHandler {
	return &StaffingGrpcHandler{svc: svc}
}

var _ staffingpb.StaffingServiceServer = (*StaffingGrpcHandler)(nil)

// GetVacancyCount は部署・役職・組織全体の定員と空席を返します。
func (h *StaffingGrpcHandler) GetVacancyCount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := staffingpb.ParseVacancyCountRequest(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	result, err := h.svc.GetVacancyCount(ctx, staffing.GetVacancyCountInput{
		DepartmentID: in.DepartmentID,
		PositionID:   in.PositionID,
		DirectOnly:   in.DirectOnly,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return toProtoCount(result), nil
}

// GetDirectVacancyCount は (部署, 役職) の組だけの定員と空席を返します。
func (h *StaffingGrpcHandler) GetDirectVacancyCount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := staffingpb.ParseVacancyCountRequest(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	result, err := h.svc.GetDirectVacancyCount(ctx, staffing.GetDirectVacancyCountInput{
		DepartmentID: derefID(in.DepartmentID),
		PositionID:   derefID(in.PositionID),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return toProtoCount(result), nil
}

func toProtoCount(result *staffing.VacancyCountResult) *structpb.Struct {
	return staffingpb.VacancyCountResponse{
		Total:       int64(result.Count.Total),
		Occupied:    int64(result.Count.Occupied),
		Vacant:      int64(result.Count.Vacant),
		Departments: int64(result.Count.Departments),
		Strategy:    string(result.Strategy),
	}.ToStruct()
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
