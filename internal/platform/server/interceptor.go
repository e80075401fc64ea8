package server

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/logging"
)

// RequestIDHeader はリクエスト ID を受け渡すメタデータのキーです。
const RequestIDHeader = "x-request-id"

// RequestLoggingInterceptor はリクエスト ID を採番し、呼び出しごとに結果をログに残します。
// クライアントが x-request-id を送った場合はそれを使います。
func RequestLoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := incomingRequestID(ctx)
		reqLogger := logger.With(zap.String("request_id", requestID), zap.String("method", info.FullMethod))

		ctx = logging.WithRequestID(ctx, requestID)
		ctx = logging.WithLogger(ctx, reqLogger)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		reqLogger.Log(levelFor(code), "grpc call finished",
			zap.String("code", code.String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return resp, err
	}
}

// RecoveryInterceptor は handler の panic を Internal エラーに変換します。
func RecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.FromContext(ctx, logger).Error("panic in grpc handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, fmt.Sprintf("internal error in %s", info.FullMethod))
			}
		}()
		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

func levelFor(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK:
		return zapcore.InfoLevel
	case codes.InvalidArgument, codes.NotFound, codes.Canceled, codes.DeadlineExceeded, codes.FailedPrecondition:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
