package rpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"appointment-booking-api/internal/apperr"
)

const errorDomain = "booking.v1"

func grpcCode(c apperr.Code) codes.Code {
	switch c {
	case apperr.CodeMissingFields, apperr.CodeMissingCredentials, apperr.CodeMissingSlotID,
		apperr.CodeInvalidDateFormat, apperr.CodeInvalidDateRange, apperr.CodeBadRequest:
		return codes.InvalidArgument
	case apperr.CodePastBooking:
		return codes.FailedPrecondition
	case apperr.CodeInvalidCredentials, apperr.CodeTokenMissing, apperr.CodeInvalidTokenFormat,
		apperr.CodeTokenExpired, apperr.CodeInvalidToken, apperr.CodeUserNotFound:
		return codes.Unauthenticated
	case apperr.CodeForbidden:
		return codes.PermissionDenied
	case apperr.CodeSlotNotFound, apperr.CodeBookingNotFound, apperr.CodeNotFound:
		return codes.NotFound
	case apperr.CodeEmailExists, apperr.CodeSlotTaken:
		return codes.AlreadyExists
	case apperr.CodeTooManyRequests:
		return codes.ResourceExhausted
	default:
		return codes.Internal
	}
}

// toStatus converts an application error into a status that carries the
// machine-readable code as ErrorInfo.Reason.
func toStatus(err error) error {
	e := apperr.As(err)
	st := status.New(grpcCode(e.Code), e.Message)
	if withInfo, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(e.Code),
		Domain: errorDomain,
	}); derr == nil {
		st = withInfo
	}
	return st.Err()
}

// ErrorCode recovers the application code from a status returned by the
// server. Errors without one report INTERNAL_ERROR.
func ErrorCode(err error) apperr.Code {
	if err == nil {
		return ""
	}
	st, ok := status.FromError(err)
	if !ok {
		return apperr.CodeInternal
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.Domain == errorDomain {
			return apperr.Code(info.Reason)
		}
	}
	return apperr.CodeInternal
}

// errorInterceptor is the outermost interceptor: it logs each call and turns
// whatever the handler or inner interceptors returned into a status.
func errorInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		var ae *apperr.Error
		switch {
		case err == nil:
		case errors.As(err, &ae):
			if ae.Code == apperr.CodeInternal {
				log.Error("rpc failed", "method", info.FullMethod, "err", err)
			}
			err = toStatus(ae)
		default:
			if _, ok := status.FromError(err); !ok {
				log.Error("rpc failed", "method", info.FullMethod, "err", err)
				err = toStatus(err)
			}
		}

		log.Info("rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency", time.Since(start))
		return resp, err
	}
}
