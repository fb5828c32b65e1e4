package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avoronova/go-todo-planner/internal/tasks"
)

/*
handles routes:
- GET /tasks - list the caller's tasks
- POST /tasks - create a new task
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTasks(w, r)
	case http.MethodPost:
		h.createTask(w, r)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.Tasks.List(r.Context(), identity.ID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, list)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var input tasks.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	task, err := h.Tasks.Create(r.Context(), identity.ID, input)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	h.broadcast(identity.ID, "task_created", task)
	w.Header().Set("Location", "/tasks/"+strconv.FormatInt(task.ID, 10))
	sendJSON(w, http.StatusCreated, task)
}

/*
routes:
- GET /tasks/{id}
- PUT /tasks/{id}
- DELETE /tasks/{id}
*/
func (h *Handler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// a non-numeric id cannot match any task, so it reads as not found
	taskID, err := strconv.ParseInt(r.URL.Path[len("/tasks/"):], 10, 64)
	if err != nil {
		sendError(w, "task not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getTaskByID(w, r, identity.ID, taskID)
	case http.MethodPut, http.MethodPatch:
		h.updateTaskByID(w, r, identity.ID, taskID)
	case http.MethodDelete:
		h.deleteTaskByID(w, r, identity.ID, taskID)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) getTaskByID(w http.ResponseWriter, r *http.Request, userID, taskID int64) {
	task, err := h.Tasks.Get(r.Context(), userID, taskID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) updateTaskByID(w http.ResponseWriter, r *http.Request, userID, taskID int64) {
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var patch tasks.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	task, err := h.Tasks.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	h.broadcast(userID, "task_updated", task)
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTaskByID(w http.ResponseWriter, r *http.Request, userID, taskID int64) {
	task, err := h.Tasks.Delete(r.Context(), userID, taskID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	h.broadcast(userID, "task_deleted", task)
	sendJSON(w, http.StatusOK, map[string]any{
		"message": "Task deleted successfully",
		"task":    task,
	})
}
