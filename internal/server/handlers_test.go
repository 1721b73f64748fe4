package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mediagent/internal/history"
)

func newTestServer(store history.Store) *httptest.Server {
	e := newEcho()
	NewAgentHandler(nil, store).Register(e)
	return httptest.NewServer(e)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(history.NewInMemoryStore(time.Hour))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestHistoryByTaskText(t *testing.T) {
	store := history.NewInMemoryStore(time.Hour)
	key := history.SessionKey("find cat videos")
	_ = store.Append(context.Background(), key, "find cat videos", "here are cats")
	srv := newTestServer(store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history?task=find+cat+videos")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		SessionKey string   `json:"session_key"`
		History    []string `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.SessionKey != key {
		t.Fatalf("expected session key %s, got %s", key, body.SessionKey)
	}
	if len(body.History) != 1 || body.History[0] != "here are cats" {
		t.Fatalf("unexpected history: %v", body.History)
	}
}

func TestHistoryByHashMatchesTaskLookup(t *testing.T) {
	store := history.NewInMemoryStore(time.Hour)
	key := history.SessionKey("some task")
	_ = store.Append(context.Background(), key, "some task", "answer")
	srv := newTestServer(store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history?task_hash=" + key)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		History []string `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.History) != 1 {
		t.Fatalf("unexpected history: %v", body.History)
	}
}

func TestHistoryUnknownSessionReturnsEmpty(t *testing.T) {
	srv := newTestServer(history.NewInMemoryStore(time.Hour))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history?task=never+seen")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for unknown session, got %d", resp.StatusCode)
	}
	var body struct {
		History []string `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.History) != 0 {
		t.Fatalf("expected empty history, got %v", body.History)
	}
}

func TestHistoryRequiresTaskOrHash(t *testing.T) {
	srv := newTestServer(history.NewInMemoryStore(time.Hour))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	srv := newTestServer(history.NewInMemoryStore(time.Hour))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history?task=x&limit=zero")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHistoryIndexListsSessions(t *testing.T) {
	store := history.NewInMemoryStore(time.Hour)
	_ = store.Append(context.Background(), history.SessionKey("t1"), "t1", "a1")
	_ = store.Append(context.Background(), history.SessionKey("t2"), "t2", "a2")
	srv := newTestServer(store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history_index")
	if err != nil {
		t.Fatalf("history_index: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Sessions []history.SessionInfo `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %+v", body.Sessions)
	}
}

func TestDeleteSession(t *testing.T) {
	store := history.NewInMemoryStore(time.Hour)
	key := history.SessionKey("doomed")
	_ = store.Append(context.Background(), key, "doomed", "bye")
	srv := newTestServer(store)
	defer srv.Close()

	doDelete := func(sessionKey string) (int, bool) {
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/session?session_key="+sessionKey, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		defer resp.Body.Close()
		var body struct {
			Success bool `json:"success"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return resp.StatusCode, body.Success
	}

	code, success := doDelete(key)
	if code != http.StatusOK || !success {
		t.Fatalf("expected successful delete, got %d success=%v", code, success)
	}
	// A repeat delete reports success=false with a 200, not an error.
	code, success = doDelete(key)
	if code != http.StatusOK || success {
		t.Fatalf("expected success=false for missing session, got %d success=%v", code, success)
	}
}

func TestRunTaskRejectsEmptyTask(t *testing.T) {
	srv := newTestServer(history.NewInMemoryStore(time.Hour))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/run_task", "application/json", strings.NewReader(`{"task": "  "}`))
	if err != nil {
		t.Fatalf("run_task: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
