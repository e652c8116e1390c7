package dispatch

import (
	"context"

	"dispatch/internal/handlers/rest/dto"
	"google.golang.org/grpc"
)

// Client клиент сервиса, вызовы идут с content-subtype json.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetOrderView(ctx context.Context, in *GetOrderViewRequest, opts ...grpc.CallOption) (*dto.OrderSnapshot, error) {
	out := new(dto.OrderSnapshot)
	if err := c.invoke(ctx, methodGetOrderView, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRiderDashboard(ctx context.Context, in *GetRiderDashboardRequest, opts ...grpc.CallOption) (*dto.RiderDashboard, error) {
	out := new(dto.RiderDashboard)
	if err := c.invoke(ctx, methodGetRiderDashboard, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ToggleAvailability(ctx context.Context, in *ToggleAvailabilityRequest, opts ...grpc.CallOption) (*dto.Rider, error) {
	out := new(dto.Rider)
	if err := c.invoke(ctx, methodToggleAvailability, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AcceptOffer(ctx context.Context, in *AcceptOfferRequest, opts ...grpc.CallOption) (*dto.Order, error) {
	out := new(dto.Order)
	if err := c.invoke(ctx, methodAcceptOffer, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdvanceDelivery(ctx context.Context, in *AdvanceDeliveryRequest, opts ...grpc.CallOption) (*dto.Order, error) {
	out := new(dto.Order)
	if err := c.invoke(ctx, methodAdvanceDelivery, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, callOpts...)
}
