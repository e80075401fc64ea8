// Package staffingv1 は staffing.v1.StaffingService の gRPC 定義です。
// メッセージは google.protobuf.Struct で表現し、フィールド名は下記の定数に従います。
package staffingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "staffing.v1.StaffingService"

	GetVacancyCountFullMethodName       = "/" + ServiceName + "/GetVacancyCount"
	GetDirectVacancyCountFullMethodName = "/" + ServiceName + "/GetDirectVacancyCount"
)

// StaffingServiceServer はサーバー側の実装が満たすインターフェースです。
type StaffingServiceServer interface {
	GetVacancyCount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetDirectVacancyCount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterStaffingServiceServer はサービスを登録します。
func RegisterStaffingServiceServer(s grpc.ServiceRegistrar, srv StaffingServiceServer) {
	s.RegisterService(&StaffingService_ServiceDesc, srv)
}

func _StaffingService_GetVacancyCount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StaffingServiceServer).GetVacancyCount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetVacancyCountFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StaffingServiceServer).GetVacancyCount(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _StaffingService_GetDirectVacancyCount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StaffingServiceServer).GetDirectVacancyCount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetDirectVacancyCountFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StaffingServiceServer).GetDirectVacancyCount(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// StaffingService_ServiceDesc は StaffingService のサービス記述子です。
var StaffingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StaffingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetVacancyCount", Handler: _StaffingService_GetVacancyCount_Handler},
		{MethodName: "GetDirectVacancyCount", Handler: _StaffingService_GetDirectVacancyCount_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "staffing/v1/staffing.proto",
}

// StaffingServiceClient はクライアント側のインターフェースです。
type StaffingServiceClient interface {
	GetVacancyCount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDirectVacancyCount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type staffingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStaffingServiceClient は StaffingServiceClient を生成します。
func NewStaffingServiceClient(cc grpc.ClientConnInterface) StaffingServiceClient {
	return &staffingServiceClient{cc: cc}
}

func (c *staffingServiceClient) GetVacancyCount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetVacancyCountFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *staffingServiceClient) GetDirectVacancyCount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetDirectVacancyCountFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
