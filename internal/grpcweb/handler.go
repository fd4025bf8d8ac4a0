// Package grpcweb serves PortalService to browsers. gRPC-Web frames are
// unwrapped and dispatched in-process through the service descriptor, so
// the bridge runs the same interceptors as the gRPC listener.
package grpcweb

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"campus-portal-api/internal/handler"
)

const (
	maxBody     = 4 << 20
	contentType = "application/grpc-web+json"
)

// Bridge translates gRPC-Web (browser HTTP/1.1) to PortalServer calls.
type Bridge struct {
	srv         handler.PortalServer
	interceptor grpc.UnaryServerInterceptor
	codec       handler.Codec
}

// New wraps srv. Interceptors run in order, outermost first, as with
// grpc.ChainUnaryInterceptor.
func New(srv handler.PortalServer, interceptors ...grpc.UnaryServerInterceptor) *Bridge {
	return &Bridge{srv: srv, interceptor: chain(interceptors)}
}

func chain(ics []grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	if len(ics) == 0 {
		return nil
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		h := next
		for i := len(ics) - 1; i >= 0; i-- {
			ic, inner := ics[i], h
			h = func(ctx context.Context, req any) (any, error) {
				return ic(ctx, req, info, inner)
			}
		}
		return h(ctx, req)
	}
}

// Handler returns the http.Handler for POST /campus.v1.PortalService/{method}.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
		w.Header().Set("Access-Control-Expose-Headers",
			"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ct := r.Header.Get("Content-Type")
		if ct != "application/grpc-web" && !strings.HasPrefix(ct, contentType) {
			http.Error(w, "not grpc-web+json", http.StatusUnsupportedMediaType)
			return
		}

		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		log.Printf("grpc-web → %s", method)
		b.forward(w, r, method)
	})
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request, method string) {
	desc, ok := handler.Method(method)
	if !ok {
		writeStatus(w, status.New(codes.Unimplemented, "unknown method "+method))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeStatus(w, status.New(codes.ResourceExhausted, "read body failed"))
		return
	}
	if len(body) < 5 {
		writeStatus(w, status.New(codes.InvalidArgument, "body too short"))
		return
	}

	// grpc-web frame: 1-byte flag + 4-byte big-endian length + message
	if body[0]&0x01 != 0 {
		writeStatus(w, status.New(codes.Unimplemented, "compressed frames not supported"))
		return
	}
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if int(msgLen)+5 > len(body) {
		writeStatus(w, status.New(codes.InvalidArgument, "incomplete frame"))
		return
	}
	payload := body[5 : 5+msgLen]

	// forward metadata
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	ctx := metadata.NewIncomingContext(r.Context(), md)
	if addr, err := net.ResolveTCPAddr("tcp", r.RemoteAddr); err == nil {
		ctx = peer.NewContext(ctx, &peer.Peer{Addr: addr})
	}

	dec := func(v any) error {
		if len(payload) == 0 {
			return nil
		}
		if err := b.codec.Unmarshal(payload, v); err != nil {
			return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
		}
		return nil
	}
	resp, err := desc.Handler(b.srv, ctx, dec, b.interceptor)
	if err != nil {
		st := status.Convert(err)
		log.Printf("grpc-web error: %s: %s", st.Code(), st.Message())
		writeStatus(w, st)
		return
	}
	data, err := b.codec.Marshal(resp)
	if err != nil {
		writeStatus(w, status.New(codes.Internal, "encode response failed"))
		return
	}
	writeSuccess(w, data)
}

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

func trailer(st *status.Status) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grpc-status:%d\r\n", st.Code())
	if msg := st.Message(); msg != "" {
		fmt.Fprintf(&sb, "grpc-message:%s\r\n", strings.NewReplacer("\r", " ", "\n", " ").Replace(msg))
	}
	if len(st.Details()) > 0 {
		if raw, err := proto.Marshal(st.Proto()); err == nil {
			fmt.Fprintf(&sb, "grpc-status-details-bin:%s\r\n", base64.RawStdEncoding.EncodeToString(raw))
		}
	}
	return frame(0x80, []byte(sb.String()))
}

func writeStatus(w http.ResponseWriter, st *status.Status) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(trailer(st))
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(0x00, data))
	w.Write(trailer(status.New(codes.OK, "")))
}

// Router mounts the bridge under the service path next to the health and
// metrics endpoints.
func Router(b *Bridge, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	r.Handle("/"+handler.ServiceName+"/{method}", b.Handler())
	return r
}
