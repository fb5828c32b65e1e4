package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/avoronova/go-todo-planner/internal/auth"
	"github.com/avoronova/go-todo-planner/internal/handlers"
	"github.com/avoronova/go-todo-planner/internal/store"
	"github.com/avoronova/go-todo-planner/internal/tasks"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Error loading .env file: %v", err)
		}
	} else {
		log.Println(".env file not found, relying on environment variables")
	}

	validateEnv()

	userStore, taskStore, cleanup := initStores()
	defer cleanup()

	hasher := auth.NewHasher(hashWorkers())
	defer hasher.Close()

	authService := auth.NewService(userStore, hasher, []byte(os.Getenv("JWT_SECRET")))
	taskService := tasks.NewService(taskStore)

	handler := &handlers.Handler{
		Auth:  authService,
		Tasks: taskService,
		Hub:   handlers.NewHub(),
	}

	server := &http.Server{
		Addr:    ":" + os.Getenv("SERVER_PORT"),
		Handler: handlers.RequestLogger(handler.Routes()),
	}
	startServer(server)
}

func validateEnv() {
	requiredEnvVars := []string{"SERVER_PORT", "JWT_SECRET"}
	for _, env := range requiredEnvVars {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s must be set", env)
		}
	}
	if len(os.Getenv("JWT_SECRET")) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
}

// initStores picks the store backend: mutex-guarded maps by default, or the
// shared in-memory SQLite database when STORE_BACKEND=sqlite. Neither
// survives a restart.
func initStores() (store.UserStore, store.TaskStore, func()) {
	backend := os.Getenv("STORE_BACKEND")
	switch backend {
	case "", "memory":
		return store.NewMemoryUserStore(), store.NewMemoryTaskStore(), func() {}
	case "sqlite":
		db, err := store.Connect("sqlite3", store.MemoryDSN)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
		if err := store.InitSchema(context.Background(), db); err != nil {
			log.Fatalf("Failed to init sqlite schema: %v", err)
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Printf("Error closing sqlite store: %v", err)
			}
		}
		return store.NewSQLUserStore(db), store.NewSQLTaskStore(db), cleanup
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want memory or sqlite)", backend)
		return nil, nil, nil
	}
}

func hashWorkers() int {
	raw := os.Getenv("BCRYPT_WORKERS")
	if raw == "" {
		return 4
	}
	workers, err := strconv.Atoi(raw)
	if err != nil || workers < 1 {
		log.Fatalf("BCRYPT_WORKERS must be a positive integer, got %q", raw)
	}
	return workers
}

func startServer(server *http.Server) {
	log.Printf("Starting server on :%s", os.Getenv("SERVER_PORT"))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
