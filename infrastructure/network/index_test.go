package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPostHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	controller := NetworkController{BaseUrl: server.URL}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, _, err := controller.Post(ctx, "/v1/descriptors", nil, map[string]any{"image": "x"})
	if err == nil {
		t.Fatal("expected an error once the context deadline passed")
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("request outlived its context deadline by far: %s", elapsed)
	}
}

func TestPostSendsJSONWithHeaders(t *testing.T) {
	var gotContentType, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Api-Key")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	controller := NetworkController{BaseUrl: server.URL}
	response, statusCode, err := controller.Post(context.Background(), "/v1/descriptors", &map[string]string{
		"X-Api-Key": "secret",
	}, map[string]any{"image": "x"})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if *statusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", *statusCode)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q, want application/json", gotContentType)
	}
	if gotCustom != "secret" {
		t.Errorf("custom header = %q, want secret", gotCustom)
	}
	if string(*response) != `{"ok":true}` {
		t.Errorf("unexpected body %q", string(*response))
	}
}
