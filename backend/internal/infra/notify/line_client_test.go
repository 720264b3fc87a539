package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPushMessageSendsExpectedPayload(t *testing.T) {
	var got pushRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewLineClient(Options{Endpoint: server.URL, Token: "secret-token"})
	if err := client.PushMessage(context.Background(), "U123", "มีลูกค้าใหม่ / New lead"); err != nil {
		t.Fatalf("push message: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if got.To != "U123" {
		t.Fatalf("unexpected recipient: %q", got.To)
	}
	if len(got.Messages) != 1 || got.Messages[0].Type != "text" || got.Messages[0].Text != "มีลูกค้าใหม่ / New lead" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestPushMessageReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewLineClient(Options{Endpoint: server.URL, Token: "bad"})
	if err := client.PushMessage(context.Background(), "U123", "hello"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestPushMessageValidatesInput(t *testing.T) {
	client := NewLineClient(Options{Endpoint: "http://127.0.0.1:0", Token: "t"})

	if err := client.PushMessage(context.Background(), "", "hello"); err == nil {
		t.Fatal("expected error for empty recipient")
	}
	if err := client.PushMessage(context.Background(), "U123", "  "); err == nil {
		t.Fatal("expected error for empty text")
	}
}
