package grpcweb

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	spb "google.golang.org/genproto/googleapis/rpc/status"

	"campus-portal-api/internal/auth"
	"campus-portal-api/internal/handler"
	"campus-portal-api/internal/memstore"
	"campus-portal-api/internal/middleware"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/query"
	"campus-portal-api/internal/workflow"
)

const secret = "test-secret"

func server(t *testing.T, burst int) *httptest.Server {
	t.Helper()
	st := memstore.New()
	q := query.New(st, nil)
	h := handler.New(workflow.New(st, workflow.WithObserver(q)), q)
	rl := middleware.NewRateLimiter(0.001, burst)
	t.Cleanup(rl.Close)

	b := New(h, middleware.RateLimit(rl), middleware.Auth(secret))
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("# metrics")) })
	srv := httptest.NewServer(Router(b, metrics))
	t.Cleanup(srv.Close)
	return srv
}

type result struct {
	message  []byte
	trailers map[string]string
}

func (r result) code() codes.Code {
	var c int
	for _, ch := range r.trailers["grpc-status"] {
		c = c*10 + int(ch-'0')
	}
	return codes.Code(c)
}

func invoke(t *testing.T, srv *httptest.Server, a model.Actor, method string, req any) result {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	hreq, _ := http.NewRequest(http.MethodPost, srv.URL+"/"+handler.ServiceName+"/"+method,
		bytes.NewReader(frame(0x00, payload)))
	hreq.Header.Set("Content-Type", "application/grpc-web+json")
	if a != nil {
		tok, _ := auth.MakeToken(a, secret, time.Minute)
		hreq.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := http.DefaultClient.Do(hreq)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("http status %d", resp.StatusCode)
	}

	var body bytes.Buffer
	body.ReadFrom(resp.Body)
	raw := body.Bytes()
	out := result{trailers: map[string]string{}}
	for len(raw) >= 5 {
		n := binary.BigEndian.Uint32(raw[1:5])
		data := raw[5 : 5+n]
		if raw[0]&0x80 != 0 {
			for _, line := range strings.Split(strings.TrimSpace(string(data)), "\r\n") {
				k, v, _ := strings.Cut(line, ":")
				out.trailers[k] = v
			}
		} else {
			out.message = data
		}
		raw = raw[5+n:]
	}
	return out
}

func TestBridgeRoundTrip(t *testing.T) {
	srv := server(t, 10)
	student := model.Student{ID: "s1", Name: "John Doe"}

	res := invoke(t, srv, student, "CreateIssue", handler.CreateIssueRequest{
		Title: "Broken door", Description: "Won't lock", Category: "Security", Location: "Res B",
	})
	if res.code() != codes.OK {
		t.Fatalf("create: %v", res.trailers)
	}
	var created handler.IssueResponse
	if err := json.Unmarshal(res.message, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Issue.Status != model.IssueSubmitted || created.Issue.StudentID != "s1" {
		t.Fatalf("unexpected issue: %+v", created.Issue)
	}

	res = invoke(t, srv, student, "ListIssues", handler.Empty{})
	var list handler.ListIssuesResponse
	json.Unmarshal(res.message, &list)
	if len(list.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(list.Issues))
	}
}

func TestBridgeErrors(t *testing.T) {
	srv := server(t, 10)

	if res := invoke(t, srv, nil, "ListIssues", handler.Empty{}); res.code() != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", res.trailers)
	}
	if res := invoke(t, srv, model.Admin{ID: "a1"}, "Login", handler.Empty{}); res.code() != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", res.trailers)
	}

	res := invoke(t, srv, model.Student{ID: "s1"}, "GetIssue", handler.IDRequest{ID: "missing"})
	if res.code() != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", res.trailers)
	}
	raw, err := base64.RawStdEncoding.DecodeString(res.trailers["grpc-status-details-bin"])
	if err != nil {
		t.Fatalf("details encoding: %v", err)
	}
	var sp spb.Status
	if err := proto.Unmarshal(raw, &sp); err != nil {
		t.Fatalf("details: %v", err)
	}
	st := status.FromProto(&sp)
	var found bool
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.Reason == "NOT_FOUND" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing ErrorInfo in %v", st.Details())
	}
}

func TestBridgeRejectsCompressedFrame(t *testing.T) {
	srv := server(t, 10)
	tok, _ := auth.MakeToken(model.Student{ID: "s1"}, secret, time.Minute)
	hreq, _ := http.NewRequest(http.MethodPost, srv.URL+"/"+handler.ServiceName+"/ListIssues",
		bytes.NewReader(frame(0x01, []byte("{}"))))
	hreq.Header.Set("Content-Type", "application/grpc-web+json")
	hreq.Header.Set("Authorization", "Bearer "+tok)
	resp, err := http.DefaultClient.Do(hreq)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	body.ReadFrom(resp.Body)
	raw := body.Bytes()
	if len(raw) < 5 || raw[0] != 0x80 {
		t.Fatalf("expected a lone trailer frame, got % x", raw)
	}
	if !strings.Contains(string(raw[5:]), "grpc-status:12\r\n") {
		t.Fatalf("expected Unimplemented trailer, got %q", raw[5:])
	}
}

func TestBridgeRateLimit(t *testing.T) {
	srv := server(t, 1)
	admin := model.Admin{ID: "a1", Name: "Registrar"}
	req := handler.CreateNotificationRequest{Title: "t", Content: "c", TargetRoles: []model.Role{model.RoleStudent}}

	if res := invoke(t, srv, admin, "CreateNotification", req); res.code() != codes.OK {
		t.Fatalf("first create: %v", res.trailers)
	}
	if res := invoke(t, srv, admin, "CreateNotification", req); res.code() != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", res.trailers)
	}
	if res := invoke(t, srv, admin, "ListNotifications", handler.Empty{}); res.code() != codes.OK {
		t.Fatalf("reads are not limited: %v", res.trailers)
	}
}

func TestRouter(t *testing.T) {
	srv := server(t, 10)

	for path, want := range map[string]string{"/healthz": "ok", "/metrics": "# metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		var body bytes.Buffer
		body.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || body.String() != want {
			t.Fatalf("%s: %d %q", path, resp.StatusCode, body.String())
		}
	}

	resp, err := http.Post(srv.URL+"/"+handler.ServiceName+"/ListIssues", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.StatusCode)
	}

	preflight, _ := http.NewRequest(http.MethodOptions, srv.URL+"/"+handler.ServiceName+"/ListIssues", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	resp, err = http.DefaultClient.Do(preflight)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("cors origin: %q", resp.Header.Get("Access-Control-Allow-Origin"))
	}
}

func TestChainOrder(t *testing.T) {
	if chain(nil) != nil {
		t.Fatal("empty chain should be nil")
	}
	var order []string
	mk := func(name string) grpc.UnaryServerInterceptor {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
			order = append(order, name)
			return next(ctx, req)
		}
	}
	ic := chain([]grpc.UnaryServerInterceptor{mk("outer"), mk("inner")})
	_, err := ic(context.Background(), nil, &grpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
		order = append(order, "handler")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if strings.Join(order, ",") != "outer,inner,handler" {
		t.Fatalf("order: %v", order)
	}
}
