package middleware

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"

	"appointment-booking-api/internal/apperr"
)

func newLimiter(t *testing.T, rps float64, burst int) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRateLimiter(ctx, rps, burst)
}

func TestAllowPerIP(t *testing.T) {
	rl := newLimiter(t, 0.001, 2)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// separate bucket
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestEchoMiddleware(t *testing.T) {
	rl := newLimiter(t, 0.001, 1)
	e := echo.New()
	h := rl.Echo()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	call := func() error {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		return h(e.NewContext(req, httptest.NewRecorder()))
	}
	require.NoError(t, call())
	assert.ErrorIs(t, call(), apperr.ErrTooManyRequests)
}

func TestUnaryInterceptor(t *testing.T) {
	rl := newLimiter(t, 0.001, 1)
	ic := rl.Unary("/svc/Login")
	next := func(context.Context, any) (any, error) { return "ok", nil }

	ctx := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.9"), Port: 40000},
	})
	login := &grpc.UnaryServerInfo{FullMethod: "/svc/Login"}
	other := &grpc.UnaryServerInfo{FullMethod: "/svc/ListSlots"}

	_, err := ic(ctx, nil, login, next)
	require.NoError(t, err)
	_, err = ic(ctx, nil, login, next)
	assert.ErrorIs(t, err, apperr.ErrTooManyRequests)

	// a new connection from the same host shares the bucket
	ctx2 := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.9"), Port: 40001},
	})
	_, err = ic(ctx2, nil, login, next)
	assert.ErrorIs(t, err, apperr.ErrTooManyRequests)

	for range 3 {
		_, err = ic(ctx, nil, other, next)
		assert.NoError(t, err)
	}
}
