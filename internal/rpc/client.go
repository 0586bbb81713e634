package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client is a typed BookingService client over any connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithToken attaches a bearer token to outgoing calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func (c *Client) invoke(ctx context.Context, method string, in, out message) error {
	return c.cc.Invoke(ctx, FullMethod(method), in, out, grpc.ForceCodec(Codec{}))
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest) (*RegisterResponse, error) {
	out := &RegisterResponse{}
	return out, c.invoke(ctx, "Register", in, out)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest) (*LoginResponse, error) {
	out := &LoginResponse{}
	return out, c.invoke(ctx, "Login", in, out)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.invoke(ctx, "Logout", &Empty{}, &Empty{})
}

func (c *Client) ListSlots(ctx context.Context, in *ListSlotsRequest) (*ListSlotsResponse, error) {
	out := &ListSlotsResponse{}
	return out, c.invoke(ctx, "ListSlots", in, out)
}

func (c *Client) Book(ctx context.Context, in *BookRequest) (*BookResponse, error) {
	out := &BookResponse{}
	return out, c.invoke(ctx, "Book", in, out)
}

func (c *Client) Cancel(ctx context.Context, in *CancelRequest) (*CancelResponse, error) {
	out := &CancelResponse{}
	return out, c.invoke(ctx, "Cancel", in, out)
}

func (c *Client) MyBookings(ctx context.Context) (*ListBookingsResponse, error) {
	out := &ListBookingsResponse{}
	return out, c.invoke(ctx, "MyBookings", &Empty{}, out)
}

func (c *Client) AllBookings(ctx context.Context) (*ListBookingsResponse, error) {
	out := &ListBookingsResponse{}
	return out, c.invoke(ctx, "AllBookings", &Empty{}, out)
}
