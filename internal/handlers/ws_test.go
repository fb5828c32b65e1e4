package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avoronova/go-todo-planner/internal/models"
	"github.com/gorilla/websocket"
)

func TestHandleWebSocket_RejectsBadTokens(t *testing.T) {
	_, mux := setupHTTP(t)

	rec := doJSON(t, mux, http.MethodGet, "/ws", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/ws?token=garbage", "", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("invalid token: expected 403, got %d", rec.Code)
	}
}

// events for a task reach its owner's connection and nobody else's
func TestHandleWebSocket_OwnerReceivesTaskEvents(t *testing.T) {
	h, mux := setupHTTP(t)
	_, aliceToken := registerUser(t, h, "alice", "a@x.com")
	_, bobToken := registerUser(t, h, "bob", "b@x.com")

	server := httptest.NewServer(mux)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	aliceConn, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?token="+aliceToken, nil)
	if err != nil {
		t.Fatalf("dial as alice: %v", err)
	}
	defer aliceConn.Close()

	bobConn, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?token="+bobToken, nil)
	if err != nil {
		t.Fatalf("dial as bob: %v", err)
	}
	defer bobConn.Close()

	// give the server a moment to register both connections in the hub
	time.Sleep(100 * time.Millisecond)

	rec := doJSON(t, mux, http.MethodPost, "/tasks", aliceToken,
		`{"taskName":"Write spec","dueDate":"2025-01-01","progress":"Not Started"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}

	if err := aliceConn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	_, message, err := aliceConn.ReadMessage()
	if err != nil {
		t.Fatalf("alice read: %v", err)
	}

	var event struct {
		Event string       `json:"event"`
		Task  *models.Task `json:"task"`
	}
	if err := json.Unmarshal(message, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Event != "task_created" || event.Task == nil || event.Task.TaskName != "Write spec" {
		t.Errorf("unexpected event: %s", message)
	}

	// bob's connection must stay silent
	if err := bobConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	if _, stray, err := bobConn.ReadMessage(); err == nil {
		t.Errorf("bob must not receive alice's event, got %s", stray)
	}
}

func TestHub_BroadcastWithoutConnections(t *testing.T) {
	hub := NewHub()
	// must be a no-op, not a panic
	hub.Broadcast(42, "task_created", &models.Task{ID: 1, TaskName: "x"})
}
