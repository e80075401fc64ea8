package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	staffingpb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/grpc/api/staffing/v1"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/grpc/handler"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

// New は StaffingService とヘルスチェックを登録した gRPC サーバーを構築します。
func New(listenAddr string, svc staffing.UseCase, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RequestLoggingInterceptor(logger),
			RecoveryInterceptor(logger),
		),
	}, opts...)
	srv := grpc.NewServer(opts...)

	staffingpb.RegisterStaffingServiceServer(srv, handler.NewStaffingGrpcHandler(svc))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(staffingpb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.logger.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてから停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
