// Package handlers wires the HTTP surface: JSON encoding, auth middleware,
// the task and credential endpoints and the websocket event feed. Services do
// the actual work; this layer only translates requests and errors.
package handlers

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/auth"
	"github.com/avoronova/go-todo-planner/internal/tasks"
)

const maxBodyBytes = 1 << 20 // 1MB

type Handler struct {
	Auth  *auth.Service
	Tasks *tasks.Service
	Hub   *Hub
}

// Routes builds the full endpoint table on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/register", h.Register)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/logout", h.Logout)
	mux.HandleFunc("/auth/profile", h.AuthMiddleware(h.HandleProfile))
	mux.HandleFunc("/tasks", h.AuthMiddleware(h.HandleTasks))
	mux.HandleFunc("/tasks/", h.AuthMiddleware(h.HandleTaskByID))
	mux.HandleFunc("/ws", h.HandleWebSocket)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, errorResponse{Error: message})
}

// sendServiceError maps the error taxonomy to status codes. Auth errors map
// to 400 here; the middleware answers 401/403 itself before any service runs.
func sendServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindConflict, apperrors.KindAuth:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	sendError(w, apperrors.PublicMessage(err), status)
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}
