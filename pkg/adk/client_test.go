package adk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateSession(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": "s1"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if err := c.CreateSession(context.Background(), "app", "alice", "s1"); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if gotPath != "/apps/app/users/alice/sessions/s1" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestCreateSession_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session exists", http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	err := c.CreateSession(context.Background(), "app", "alice", "s1")
	if err == nil {
		t.Fatal("CreateSession succeeded, want error")
	}
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("err = %T, want *Error", err)
	}
	if apiErr.HTTPStatus != http.StatusConflict {
		t.Errorf("HTTPStatus = %d", apiErr.HTTPStatus)
	}
	if !strings.Contains(apiErr.Body, "session exists") {
		t.Errorf("Body = %q", apiErr.Body)
	}
}

func TestRun_StreamsBody(t *testing.T) {
	const stream = "data: {\"author\":\"meta\",\"content\":{\"parts\":[{\"text\":\"hi\"}]}}\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.AppName != "app" || req.SessionID != "s1" {
			t.Errorf("request = %+v", req)
		}
		if req.NewMessage.Parts[0].Text != "SELECT 1" {
			t.Errorf("query = %q", req.NewMessage.Parts[0].Text)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(stream))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	body, err := c.Run(context.Background(), &RunRequest{
		AppName:    "app",
		UserID:     "alice",
		SessionID:  "s1",
		NewMessage: UserQuery("SELECT 1"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(got) != stream {
		t.Errorf("stream = %q", got)
	}
}

func TestRun_ContextCancelAbortsStream(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(WithBaseURL(srv.URL))
	body, err := c.Run(ctx, &RunRequest{AppName: "app", NewMessage: UserQuery("q")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer body.Close()

	cancel()
	_, err = io.ReadAll(body)
	if err == nil {
		t.Fatal("read succeeded after cancel")
	}
	if !errors.Is(err, context.Canceled) {
		t.Logf("read error after cancel: %v", err)
	}
}

func TestRun_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Run(context.Background(), &RunRequest{AppName: "app"})
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("err = %v, want *Error", err)
	}
	if !apiErr.IsServerError() {
		t.Errorf("IsServerError() = false for %d", apiErr.HTTPStatus)
	}
}
