// Package rpc serves the booking services over gRPC as booking.v1.BookingService.
package rpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/service"
)

const ServiceName = "booking.v1.BookingService"

// FullMethod returns the gRPC path of a BookingService method.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

// bookingServer is the method set the service descriptor dispatches to.
type bookingServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	ListSlots(context.Context, *ListSlotsRequest) (*ListSlotsResponse, error)
	Book(context.Context, *BookRequest) (*BookResponse, error)
	Cancel(context.Context, *CancelRequest) (*CancelResponse, error)
	MyBookings(context.Context, *Empty) (*ListBookingsResponse, error)
	AllBookings(context.Context, *Empty) (*ListBookingsResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*bookingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", bookingServer.Register),
		unary("Login", bookingServer.Login),
		unary("Logout", bookingServer.Logout),
		unary("ListSlots", bookingServer.ListSlots),
		unary("Book", bookingServer.Book),
		unary("Cancel", bookingServer.Cancel),
		unary("MyBookings", bookingServer.MyBookings),
		unary("AllBookings", bookingServer.AllBookings),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking/v1/booking.proto",
}

func unary[Req any, PReq interface {
	*Req
	message
}, Resp message](name string, call func(bookingServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, ic grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(bookingServer)
			if ic == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return ic(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			})
		},
	}
}

// Server implements BookingService on top of the service layer. Protected
// methods authorize from the "authorization" metadata before anything else.
type Server struct {
	svc *service.Services
}

func NewServer(svc *service.Services) *Server {
	return &Server{svc: svc}
}

// RegisterBookingService attaches s to gs.
func RegisterBookingService(gs grpc.ServiceRegistrar, s *Server) {
	gs.RegisterService(&serviceDesc, s)
}

// NewGRPCServer builds a server that speaks the hand-rolled codec with
// error mapping and logging installed ahead of the given interceptors.
func NewGRPCServer(log *slog.Logger, interceptors ...grpc.UnaryServerInterceptor) *grpc.Server {
	chain := append([]grpc.UnaryServerInterceptor{errorInterceptor(log)}, interceptors...)
	return grpc.NewServer(
		grpc.ForceServerCodec(Codec{}),
		grpc.ChainUnaryInterceptor(chain...),
	)
}

// authorization is the raw "authorization" metadata value, or "".
func authorization(ctx context.Context) string {
	if v := metadata.ValueFromIncomingContext(ctx, "authorization"); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (s *Server) caller(ctx context.Context) (*model.User, error) {
	return s.svc.Gate.Authorize(ctx, authorization(ctx))
}
