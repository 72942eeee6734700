package grpc

// proto.go defines the gRPC server interface derived from risk/v1/risk.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate`
// is run, replace this file with the import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	AssessTransaction(context.Context, *AssessTransactionRequest) (*AssessTransactionResponse, error)
	BatchAssess(context.Context, *BatchAssessRequest) (*BatchAssessResponse, error)
	GetVerdict(context.Context, *GetVerdictRequest) (*GetVerdictResponse, error)
	ListAccountVerdicts(context.Context, *ListAccountVerdictsRequest) (*ListAccountVerdictsResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) AssessTransaction(context.Context, *AssessTransactionRequest) (*AssessTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessTransaction not implemented")
}
func (UnimplementedRiskServiceServer) BatchAssess(context.Context, *BatchAssessRequest) (*BatchAssessResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BatchAssess not implemented")
}
func (UnimplementedRiskServiceServer) GetVerdict(context.Context, *GetVerdictRequest) (*GetVerdictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVerdict not implemented")
}
func (UnimplementedRiskServiceServer) ListAccountVerdicts(context.Context, *ListAccountVerdictsRequest) (*ListAccountVerdictsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAccountVerdicts not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s *grpclib.Server, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "risk.v1.RiskService",
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessTransaction", Handler: _RiskService_AssessTransaction_Handler},
		{MethodName: "BatchAssess", Handler: _RiskService_BatchAssess_Handler},
		{MethodName: "GetVerdict", Handler: _RiskService_GetVerdict_Handler},
		{MethodName: "ListAccountVerdicts", Handler: _RiskService_ListAccountVerdicts_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _RiskService_AssessTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).AssessTransaction(ctx, req)
}

func _RiskService_BatchAssess_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(BatchAssessRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).BatchAssess(ctx, req)
}

func _RiskService_GetVerdict_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetVerdictRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetVerdict(ctx, req)
}

func _RiskService_ListAccountVerdicts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListAccountVerdictsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ListAccountVerdicts(ctx, req)
}
