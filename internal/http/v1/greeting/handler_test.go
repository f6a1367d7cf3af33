package greeting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/greeting-demo/internal/platform/logging"
	appmiddleware "github.com/janisto/greeting-demo/internal/platform/middleware"
	"github.com/janisto/greeting-demo/internal/platform/respond"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	cfg := huma.DefaultConfig("GreetingTest", "test")
	cfg.CreateHooks = nil
	api := humachi.New(router, cfg)
	Register(api)
	return router
}

func TestGetJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "greeting-get-json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != `{"message":"hello world!"}` {
		t.Errorf("unexpected body %s", body)
	}

	var greeting Data
	if err := json.Unmarshal(resp.Body.Bytes(), &greeting); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if greeting.Message != "hello world!" {
		t.Errorf("expected 'hello world!', got %s", greeting.Message)
	}
}

func TestGetCBOR(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/cbor")
	req.Header.Set(chimiddleware.RequestIDHeader, "greeting-get-cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Errorf("expected application/cbor, got %s", ct)
	}

	var greeting Data
	if err := cbor.Unmarshal(resp.Body.Bytes(), &greeting); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if greeting.Message != Message {
		t.Errorf("expected %q, got %s", Message, greeting.Message)
	}
}

func TestGetIsIdempotent(t *testing.T) {
	router := newTestRouter()

	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		var greeting Data
		if err := json.Unmarshal(resp.Body.Bytes(), &greeting); err != nil {
			t.Fatalf("request %d: json unmarshal: %v", i, err)
		}
		if resp.Code != http.StatusOK || greeting.Message != Message {
			t.Fatalf("request %d: got %d %q", i, resp.Code, greeting.Message)
		}
	}
}
