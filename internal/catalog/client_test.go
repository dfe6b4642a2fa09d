package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_SignedStreamURL(t *testing.T) {
	var gotPath, gotAuth, gotSource string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotSource = r.URL.Query().Get("source")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"url":        "https://cdn.example.com/signed/abc?token=xyz",
			"expires_at": time.Now().Add(time.Hour).Unix(),
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	u, err := c.SignedStreamURL(context.Background(), SourceRef("src-123"))
	if err != nil {
		t.Fatalf("SignedStreamURL() error = %v", err)
	}

	if u != "https://cdn.example.com/signed/abc?token=xyz" {
		t.Errorf("url = %q, want signed CDN url", u)
	}
	if gotPath != "/v1/streams/sign" {
		t.Errorf("path = %q, want /v1/streams/sign", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth = %q, want Bearer test-key", gotAuth)
	}
	if gotSource != "src-123" {
		t.Errorf("source = %q, want src-123", gotSource)
	}
}

func TestClient_SignedStreamURL_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.SignedStreamURL(context.Background(), SourceRef("src-123"))
	if err == nil {
		t.Fatal("SignedStreamURL() should fail on 500")
	}
}

func TestClient_SignedStreamURL_EmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"url": ""})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.SignedStreamURL(context.Background(), SourceRef("src-123"))
	if err == nil {
		t.Fatal("SignedStreamURL() should fail on empty url")
	}
}

func TestClient_PublicStreamURL(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	u, err := c.PublicStreamURL(context.Background(), SourceRef("src-123"))
	if err != nil {
		t.Fatalf("PublicStreamURL() error = %v", err)
	}

	if u != srv.URL+"/public/streams/src-123" {
		t.Errorf("PublicStreamURL() = %q, want stable public url", u)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("method = %q, want HEAD", gotMethod)
	}
	if gotPath != "/public/streams/src-123" {
		t.Errorf("path = %q, want /public/streams/src-123", gotPath)
	}
}

func TestClient_PublicStreamURL_Missing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.PublicStreamURL(context.Background(), SourceRef("gone"))
	if err == nil {
		t.Fatal("PublicStreamURL() should fail on 404")
	}
}

func TestClient_RecordPlayEvent(t *testing.T) {
	var got playEventRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.RecordPlayEvent(context.Background(), "track-1", "session-9", 142*time.Second)
	if err != nil {
		t.Fatalf("RecordPlayEvent() error = %v", err)
	}

	if got.TrackID != "track-1" {
		t.Errorf("TrackID = %q, want track-1", got.TrackID)
	}
	if got.SessionID != "session-9" {
		t.Errorf("SessionID = %q, want session-9", got.SessionID)
	}
	if got.PlayedSeconds != 142 {
		t.Errorf("PlayedSeconds = %v, want 142", got.PlayedSeconds)
	}
}

func TestClient_RecordPlayEvent_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.RecordPlayEvent(context.Background(), "track-1", "s", time.Minute)
	if err == nil {
		t.Fatal("RecordPlayEvent() should fail on 403")
	}
}
