// Package grpcweb lets browsers call the gRPC service over HTTP/1.1. Frames
// are relayed byte for byte to the native server; nothing is decoded here.
package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

const (
	dataFlag    = 0x00
	trailerFlag = 0x80
	contentType = "application/grpc-web+proto"
)

// Bridge forwards gRPC-Web requests to a gRPC connection.
type Bridge struct {
	conn grpc.ClientConnInterface
	log  *slog.Logger
}

func New(conn grpc.ClientConnInterface, log *slog.Logger) *Bridge {
	return &Bridge{conn: conn, log: log}
}

// ServeHTTP handles POST /<service>/<method>. CORS is left to the router.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc-web") {
		http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeStatus(w, status.New(codes.Internal, "read body failed"))
		return
	}
	// 1-byte flag + 4-byte big-endian length + message
	if len(body) < 5 {
		writeStatus(w, status.New(codes.InvalidArgument, "body too short"))
		return
	}
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if uint64(msgLen)+5 > uint64(len(body)) {
		writeStatus(w, status.New(codes.InvalidArgument, "incomplete frame"))
		return
	}
	payload := body[5 : 5+msgLen]

	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st := status.Convert(err)
		b.log.Debug("grpc-web call failed", "method", r.URL.Path, "code", st.Code().String())
		writeStatus(w, st)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(dataFlag, resp.data))
	w.Write(frame(trailerFlag, []byte("grpc-status:0\r\n")))
}

// rawMsg wraps raw protobuf bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through without marshal/unmarshal.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}

func (rawCodec) Name() string { return "raw" }

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

// writeStatus sends a trailers-only response. Details travel base64 encoded
// in grpc-status-details-bin so browser clients can read the error code.
func writeStatus(w http.ResponseWriter, st *status.Status) {
	trailer := fmt.Sprintf("grpc-status:%d\r\ngrpc-message:%s\r\n",
		st.Code(), url.PathEscape(st.Message()))
	if len(st.Details()) > 0 {
		if raw, err := proto.Marshal(st.Proto()); err == nil {
			trailer += "grpc-status-details-bin:" + base64.RawStdEncoding.EncodeToString(raw) + "\r\n"
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(trailerFlag, []byte(trailer)))
}
