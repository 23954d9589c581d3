package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_OK(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)

	h := HealthHandler(nil)
	h.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("expected status 'ok', got %q", body.Status)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_PingFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)

	HealthHandler(pingFunc(func(context.Context) error { return errors.New("down") })).ServeHTTP(rr, req)

	if rr.Code != 503 {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
	if rr.Body.String() != `{"status":"unavailable"}` {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestHealthRoute_UsesStorePing(t *testing.T) {
	ts := newTestServer(t, g3Store())
	rr := ts.do("GET", "/health", nil)
	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}
