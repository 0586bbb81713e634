package grpcweb_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"appointment-booking-api/internal/grpcweb"
	"appointment-booking-api/internal/rpc"
	"appointment-booking-api/internal/service"
	"appointment-booking-api/internal/store/memory"
)

func setup(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(memory.New(), service.Options{
		Secret: "test-secret",
		Clock:  func() time.Time { return time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC) },
		Logger: log,
	})
	_, err := svc.Identity.Register(context.Background(), "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	gs := rpc.NewGRPCServer(log)
	rpc.RegisterBookingService(gs, rpc.NewServer(svc))
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return grpcweb.New(conn, log)
}

func call(t *testing.T, h http.Handler, method string, msg any) (data []byte, trailer string) {
	t.Helper()
	payload, err := rpc.Codec{}.Marshal(msg)
	require.NoError(t, err)
	body := make([]byte, 5+len(payload))
	binary.BigEndian.PutUint32(body[1:5], uint32(len(payload)))
	copy(body[5:], payload)

	req := httptest.NewRequest(http.MethodPost, rpc.FullMethod(method), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/grpc-web+proto")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	out := rec.Body.Bytes()
	for len(out) >= 5 {
		n := binary.BigEndian.Uint32(out[1:5])
		chunk := out[5 : 5+n]
		if out[0]&0x80 != 0 {
			trailer = string(chunk)
		} else {
			data = chunk
		}
		out = out[5+n:]
	}
	return data, trailer
}

func TestBridgeLogin(t *testing.T) {
	h := setup(t)

	data, trailer := call(t, h, "Login", &rpc.LoginRequest{Email: "alice@example.com", Password: "pw123456"})
	assert.Contains(t, trailer, "grpc-status:0")

	resp := &rpc.LoginResponse{}
	require.NoError(t, rpc.Codec{}.Unmarshal(data, resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "patient", resp.Role)
}

func TestBridgeErrorTrailer(t *testing.T) {
	h := setup(t)

	data, trailer := call(t, h, "Login", &rpc.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Empty(t, data)
	assert.Contains(t, trailer, "grpc-status:16")
	assert.Contains(t, trailer, "grpc-status-details-bin:")
}

func TestBridgeRejectsNonGRPCWeb(t *testing.T) {
	h := setup(t)

	req := httptest.NewRequest(http.MethodPost, rpc.FullMethod("Login"), strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodGet, rpc.FullMethod("Login"), nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
