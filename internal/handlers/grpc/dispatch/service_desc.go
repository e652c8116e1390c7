package dispatch

import (
	"context"

	"dispatch/internal/handlers/rest/dto"
	"google.golang.org/grpc"
)

const ServiceName = "dispatch.v1.Dispatch"

const (
	methodGetOrderView       = "GetOrderView"
	methodGetRiderDashboard  = "GetRiderDashboard"
	methodToggleAvailability = "ToggleAvailability"
	methodAcceptOffer        = "AcceptOffer"
	methodAdvanceDelivery    = "AdvanceDelivery"
)

type DispatchServer interface {
	GetOrderView(ctx context.Context, in *GetOrderViewRequest) (*dto.OrderSnapshot, error)
	GetRiderDashboard(ctx context.Context, in *GetRiderDashboardRequest) (*dto.RiderDashboard, error)
	ToggleAvailability(ctx context.Context, in *ToggleAvailabilityRequest) (*dto.Rider, error)
	AcceptOffer(ctx context.Context, in *AcceptOfferRequest) (*dto.Order, error)
	AdvanceDelivery(ctx context.Context, in *AdvanceDeliveryRequest) (*dto.Order, error)
}

// ServiceDesc описан вручную, сообщения ходят через Codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DispatchServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: methodGetOrderView,
			Handler: unaryHandler(methodGetOrderView, func(ctx context.Context, srv DispatchServer, in *GetOrderViewRequest) (any, error) {
				return srv.GetOrderView(ctx, in)
			}),
		},
		{
			MethodName: methodGetRiderDashboard,
			Handler: unaryHandler(methodGetRiderDashboard, func(ctx context.Context, srv DispatchServer, in *GetRiderDashboardRequest) (any, error) {
				return srv.GetRiderDashboard(ctx, in)
			}),
		},
		{
			MethodName: methodToggleAvailability,
			Handler: unaryHandler(methodToggleAvailability, func(ctx context.Context, srv DispatchServer, in *ToggleAvailabilityRequest) (any, error) {
				return srv.ToggleAvailability(ctx, in)
			}),
		},
		{
			MethodName: methodAcceptOffer,
			Handler: unaryHandler(methodAcceptOffer, func(ctx context.Context, srv DispatchServer, in *AcceptOfferRequest) (any, error) {
				return srv.AcceptOffer(ctx, in)
			}),
		},
		{
			MethodName: methodAdvanceDelivery,
			Handler: unaryHandler(methodAdvanceDelivery, func(ctx context.Context, srv DispatchServer, in *AdvanceDeliveryRequest) (any, error) {
				return srv.AdvanceDelivery(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dispatch/v1/dispatch.proto",
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req any](
	method string,
	call func(ctx context.Context, srv DispatchServer, in *Req) (any, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, srv.(DispatchServer), in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(ctx, srv.(DispatchServer), req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
