package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// Hasher runs bcrypt on a fixed pool of worker goroutines so a burst of
// register/login attempts cannot stall unrelated request handling.
type Hasher struct {
	jobs chan func()
}

func NewHasher(workers int) *Hasher {
	if workers < 1 {
		workers = 1
	}
	h := &Hasher{jobs: make(chan func())}
	for i := 0; i < workers; i++ {
		go h.worker()
	}
	return h
}

func (h *Hasher) worker() {
	for job := range h.jobs {
		job()
	}
}

// Close stops the workers once queued jobs have drained.
func (h *Hasher) Close() {
	close(h.jobs)
}

func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	reply := make(chan result, 1)
	job := func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		reply <- result{hash: string(hash), err: err}
	}

	select {
	case h.jobs <- job:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case r := <-reply:
		return r.hash, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (h *Hasher) Compare(ctx context.Context, hash, password string) error {
	reply := make(chan error, 1)
	job := func() {
		reply <- bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}

	select {
	case h.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
