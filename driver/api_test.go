package driver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"
)

type payload struct {
	ID     uint64 `json:"id"`
	Amount int    `json:"amount"`
}

func TestConnectAPI_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:3333", "://bad"} {
		if _, err := ConnectAPI(raw, 0, zaptest.NewLogger(t)); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestAPIClientGet_JoinsPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"amount":3}`))
	}))
	defer server.Close()

	client, err := ConnectAPI(server.URL+"/api", 0, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out payload
	if err = client.Get(context.Background(), &out, "stock", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/stock/7" {
		t.Errorf("expected path /api/stock/7, got %s", gotPath)
	}
	if out.ID != 7 || out.Amount != 3 {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestAPIClientGet_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, _ := ConnectAPI(server.URL, 0, zaptest.NewLogger(t))

	var out payload
	err := client.Get(context.Background(), &out, "products", "1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestAPIClientGet_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, _ := ConnectAPI(server.URL, 0, zaptest.NewLogger(t))

	var out payload
	err := client.Get(context.Background(), &out, "stock", "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("502 must not be reported as not found: %v", err)
	}
}

func TestAPIClientGet_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"amount":`))
	}))
	defer server.Close()

	client, _ := ConnectAPI(server.URL, 0, zaptest.NewLogger(t))

	var out payload
	if err := client.Get(context.Background(), &out, "stock", "1"); err == nil {
		t.Error("expected decode error")
	}
}

func TestAPIClientGet_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := ConnectAPI(server.URL, 0, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out payload
	if err := client.Get(ctx, &out, "stock", "1"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}
