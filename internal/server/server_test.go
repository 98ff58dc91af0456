package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/observability"
	"github.com/matzehuels/ggframe/pkg/pipeline"
	"github.com/matzehuels/ggframe/pkg/store"
)

const figure = `{
  "name": "mpg",
  "plots": [
    {"name": "p1", "title": "Engine size", "x_label": "displ"},
    {"name": "p2", "y_label": "hwy"}
  ],
  "composition": {"expr": "p1 | p2"}
}`

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	logger := log.NewWithOptions(&strings.Builder{}, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	st := store.NewMemory()
	srv := httptest.NewServer(New(Config{}, runner, st, logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv, st
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestLayoutAndGet(t *testing.T) {
	srv, st := newTestServer(t)

	resp := post(t, srv.URL+"/v1/layout", `{"figure": `+figure+`}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var rep layout.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.ID == "" {
		t.Fatal("report has no id")
	}
	if got, want := resp.Header.Get("Location"), "/v1/layouts/"+rep.ID; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	if rep.Figure != "mpg" {
		t.Errorf("Figure = %q, want %q", rep.Figure, "mpg")
	}
	if len(rep.Plots) != 2 {
		t.Errorf("len(Plots) = %d, want 2", len(rep.Plots))
	}
	if st.Len() != 1 {
		t.Errorf("store Len() = %d, want 1", st.Len())
	}

	get, err := http.Get(srv.URL + "/v1/layouts/" + rep.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", get.StatusCode, http.StatusOK)
	}
	var stored layout.Report
	if err := json.NewDecoder(get.Body).Decode(&stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.ID != rep.ID {
		t.Errorf("stored ID = %q, want %q", stored.ID, rep.ID)
	}
}

func TestGetLayoutErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		id     string
		status int
		code   string
	}{
		{"malformed", "not-a-uuid", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown", "6f1c2b8e-3d4a-4f5b-9c6d-7e8f9a0b1c2d", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/v1/layouts/" + tt.id)
			if err != nil {
				t.Fatalf("GET: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := decodeError(t, resp); string(got.Code) != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		body        string
		contentType string
		filename    string
		prefix      string
	}{
		{`{"figure": ` + figure + `}`, "image/svg+xml", `"mpg.svg"`, "<?xml"},
		{`{"figure": ` + figure + `, "format": "png", "scale": 0.5}`, "image/png", `"mpg.png"`, "\x89PNG"},
		{`{"figure": ` + figure + `, "format": "pdf", "name": "fuel"}`, "application/pdf", `"fuel.pdf"`, "%PDF"},
		{`{"figure": ` + figure + `, "format": "dot"}`, "text/vnd.graphviz", `"mpg.dot"`, "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/render", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want %d: %v", resp.StatusCode, http.StatusOK, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, tt.filename) {
				t.Errorf("Content-Disposition = %q, want filename %s", got, tt.filename)
			}
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("body does not start with %q", tt.prefix)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"not json", "/v1/render", `figure`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/render", `{"figure": {}, "colour": "red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no figure", "/v1/layout", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/v1/render", `{"figure": ` + figure + `, "format": "eps"}`, http.StatusBadRequest, "UNSUPPORTED"},
		{"bad name", "/v1/render", `{"figure": ` + figure + `, "name": "../x"}`, http.StatusBadRequest, "INVALID_PATH"},
		{"no plots", "/v1/render", `{"figure": {"plots": []}}`, http.StatusBadRequest, "INVALID_SPEC"},
		{"bad expr", "/v1/layout", `{"figure": {"plots": [{"name": "a"}], "composition": {"expr": "a +"}}}`, http.StatusBadRequest, "INVALID_SPEC"},
		{"bad scale", "/v1/render", `{"figure": ` + figure + `, "scale": 100}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := decodeError(t, resp); string(got.Code) != tt.code {
				t.Errorf("code = %q, want %q (%s)", got.Code, tt.code, got.Message)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INVALID_CONFIG", http.StatusBadRequest},
		{"NOT_FOUND", http.StatusNotFound},
		{"TIMEOUT", http.StatusGatewayTimeout},
		{"NETWORK_ERROR", http.StatusBadGateway},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(errors.Code(tt.code)); got != tt.want {
			t.Errorf("statusOf(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/layouts/not-a-uuid")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []string{"GET /v1/layouts/{id}", "GET /healthz"}
	if len(hooks.routes) != len(want) {
		t.Fatalf("routes = %v, want %v", hooks.routes, want)
	}
	for i := range want {
		if hooks.routes[i] != want[i] {
			t.Errorf("routes[%d] = %q, want %q", i, hooks.routes[i], want[i])
		}
	}
	if hooks.status[0] != http.StatusBadRequest || hooks.status[1] != http.StatusOK {
		t.Errorf("status = %v, want [400 200]", hooks.status)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(&strings.Builder{}, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	defer runner.Close()
	s := New(Config{Addr: "127.0.0.1:0"}, runner, store.NewMemory(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
