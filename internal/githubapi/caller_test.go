package githubapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	reporef "github.com/thep200/github-event-tracker/internal/repo_ref"
	"github.com/thep200/github-event-tracker/pkg/log"
)

func testCaller(t *testing.T, apiUrl, token string) *Caller {
	t.Helper()
	loader, _ := cfg.NewMockLoader()
	config, _ := loader.Load()
	config.GithubApi.ApiUrl = apiUrl
	config.GithubApi.AccessToken = token
	logger, _ := log.NewCslLogger()
	return NewCaller(logger, config)
}

func TestCallDecodesEvents(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("X-RateLimit-Remaining", "59")
		w.Write([]byte(`[
			{"id":"100","type":"WatchEvent","actor":{"login":"octocat","avatar_url":"https://x/a.png"},"created_at":"2025-06-01T12:00:00Z","payload":{"action":"started"}},
			{"id":"101","type":"PushEvent","created_at":"2025-06-01T12:01:00Z","payload":{}}
		]`))
	}))
	defer server.Close()

	caller := testCaller(t, server.URL, "secret-token")
	events, err := caller.Call(context.Background(), reporef.Ref{Owner: "golang", Name: "go"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if gotPath != "/repos/golang/go/events" {
		t.Errorf("path = %q, want /repos/golang/go/events", gotPath)
	}
	if gotQuery != "per_page=100" {
		t.Errorf("query = %q, want per_page=100", gotQuery)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization = %q, want Bearer secret-token", gotAuth)
	}
	if gotAgent != cfg.DefaultUserAgent {
		t.Errorf("user-agent = %q, want %q", gotAgent, cfg.DefaultUserAgent)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Id != "100" || events[0].Actor.Login != "octocat" {
		t.Errorf("event[0] = %+v", events[0])
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !events[0].CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", events[0].CreatedAt, want)
	}
	if events[1].Actor != nil {
		t.Errorf("event[1].Actor = %+v, want nil", events[1].Actor)
	}
}

func TestCallWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected authorization header: %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	caller := testCaller(t, server.URL, "")
	if _, err := caller.Call(context.Background(), reporef.Ref{Owner: "golang", Name: "go"}); err != nil {
		t.Fatalf("Call: %v", err)
	}
}

func TestCallFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	}))
	defer server.Close()

	caller := testCaller(t, server.URL, "")
	_, err := caller.Call(context.Background(), reporef.Ref{Owner: "golang", Name: "go"})
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", fetchErr.StatusCode)
	}
	if fetchErr.Body == "" {
		t.Error("body must carry the upstream response")
	}
}

func TestCallNonListBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Moved Permanently"}`))
	}))
	defer server.Close()

	caller := testCaller(t, server.URL, "")
	events, err := caller.Call(context.Background(), reporef.Ref{Owner: "golang", Name: "go"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0 for non-list body", len(events))
	}
}

func TestCallInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	caller := testCaller(t, server.URL, "")
	if _, err := caller.Call(context.Background(), reporef.Ref{Owner: "golang", Name: "go"}); err == nil {
		t.Fatal("expected error for invalid body")
	}
}
