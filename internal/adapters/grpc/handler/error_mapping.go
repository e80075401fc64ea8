package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	staffingpb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/grpc/api/staffing/v1"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, staffingpb.ErrMalformedMessage),
		errors.Is(err, staffing.ErrInvalidDepartmentID),
		errors.Is(err, staffing.ErrInvalidPositionID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, staffing.ErrInvalidSnapshot),
		errors.Is(err, staffing.ErrInvalidVacancyMode):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, staffing.ErrSnapshotUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
