// Package transport carries protocol transactions over gRPC. A single
// unary method moves opaque parcels in both directions; the standard
// health service reports whether an accessibility session is live.
package transport

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the gRPC service carrying transactions. It is also the
// health-check service name that tracks session connectivity.
const ServiceName = "a11ybridge.v1.Binder"

const transactMethod = "/" + ServiceName + "/Transact"

// BinderServer handles transactions.
type BinderServer interface {
	Transact(context.Context, *Transaction) (*TransactionReply, error)
}

func transactHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Transaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BinderServer).Transact(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: transactMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BinderServer).Transact(ctx, req.(*Transaction))
	}
	return interceptor(ctx, in, info, handler)
}

var binderServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BinderServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Transact", Handler: transactHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "a11ybridge/v1/binder.proto",
}
