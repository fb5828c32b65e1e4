package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avoronova/go-todo-planner/internal/auth"
	"github.com/avoronova/go-todo-planner/internal/models"
	"github.com/avoronova/go-todo-planner/internal/store"
	"github.com/avoronova/go-todo-planner/internal/tasks"
)

var testSecret = []byte(strings.Repeat("s", 32))

// setupHTTP builds the full stack over fresh in-memory stores.
func setupHTTP(t *testing.T) (*Handler, *http.ServeMux) {
	t.Helper()

	hasher := auth.NewHasher(2)
	t.Cleanup(hasher.Close)

	h := &Handler{
		Auth:  auth.NewService(store.NewMemoryUserStore(), hasher, testSecret),
		Tasks: tasks.NewService(store.NewMemoryTaskStore()),
		Hub:   NewHub(),
	}
	return h, h.Routes()
}

func registerUser(t *testing.T, h *Handler, username, email string) (*models.User, string) {
	t.Helper()
	user, token, err := h.Auth.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Password: "secret1",
		Email:    email,
		FullName: "Test User",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user, token
}

func doJSONWithoutContentType(t *testing.T, mux *http.ServeMux, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(`{"taskName":"x"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}
