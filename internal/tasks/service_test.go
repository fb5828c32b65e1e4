package tasks

import (
	"context"
	"testing"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/store"
)

const (
	aliceID int64 = 1
	bobID   int64 = 2
)

func newTestService() *Service {
	return NewService(store.NewMemoryTaskStore())
}

func sampleInput() CreateInput {
	return CreateInput{
		TaskName: "Write spec",
		Detail:   "backend first",
		DueDate:  "2025-01-01",
		Progress: "Not Started",
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"Missing taskName", func(in *CreateInput) { in.TaskName = "" }},
		{"Whitespace taskName", func(in *CreateInput) { in.TaskName = "   " }},
		{"Malformed dueDate", func(in *CreateInput) { in.DueDate = "31-12-2025" }},
		{"Non-date dueDate", func(in *CreateInput) { in.DueDate = "someday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService()
			input := sampleInput()
			tt.mutate(&input)

			_, err := s.Create(context.Background(), aliceID, input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Errorf("expected validation kind, got %v (%v)", apperrors.KindOf(err), err)
			}
		})
	}
}

func TestCreate_PermissiveFields(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	// progress is free-form and dueDate may be omitted
	input := CreateInput{TaskName: "Loose task", Progress: "whatever the caller says"}
	task, err := s.Create(ctx, aliceID, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Progress != "whatever the caller says" {
		t.Errorf("progress must be stored verbatim, got %q", task.Progress)
	}
	if task.DueDate != "" {
		t.Errorf("expected empty dueDate, got %q", task.DueDate)
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, aliceID, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}
	if created.OwnerID != aliceID {
		t.Errorf("expected owner %d, got %d", aliceID, created.OwnerID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := s.Get(ctx, aliceID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TaskName != created.TaskName || got.Detail != created.Detail ||
		got.DueDate != created.DueDate || got.Progress != created.Progress {
		t.Errorf("round trip mismatch: created %+v, got %+v", created, got)
	}
}

// a task of user A must be invisible to user B through every operation
func TestOwnershipIsolation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	task, err := s.Create(ctx, aliceID, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bobList, err := s.List(ctx, bobID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bobList) != 0 {
		t.Errorf("bob must not see alice's tasks, got %d", len(bobList))
	}

	if _, err := s.Get(ctx, bobID, task.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("get as bob: expected not found, got %v", err)
	}

	progress := "Completed"
	if _, err := s.Update(ctx, bobID, task.ID, Patch{Progress: &progress}); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("update as bob: expected not found, got %v", err)
	}

	if _, err := s.Delete(ctx, bobID, task.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("delete as bob: expected not found, got %v", err)
	}

	// the not-owned and missing cases must carry the same message
	_, errNotOwned := s.Get(ctx, bobID, task.ID)
	_, errMissing := s.Get(ctx, bobID, 9999)
	if errNotOwned.Error() != errMissing.Error() {
		t.Errorf("messages must match: %q vs %q", errNotOwned.Error(), errMissing.Error())
	}

	// and alice still sees her task
	if _, err := s.Get(ctx, aliceID, task.ID); err != nil {
		t.Errorf("get as alice: %v", err)
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, aliceID, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	progress := "Completed"
	updated, err := s.Update(ctx, aliceID, created.ID, Patch{Progress: &progress})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Progress != "Completed" {
		t.Errorf("expected progress Completed, got %q", updated.Progress)
	}
	if updated.TaskName != created.TaskName {
		t.Errorf("taskName must be untouched, got %q", updated.TaskName)
	}
	if updated.Detail != created.Detail {
		t.Errorf("detail must be untouched, got %q", updated.Detail)
	}
	if updated.DueDate != created.DueDate {
		t.Errorf("dueDate must be untouched, got %q", updated.DueDate)
	}
	if !updated.UpdatedAt.After(created.CreatedAt) {
		t.Errorf("UpdatedAt (%v) must be after CreatedAt (%v)", updated.UpdatedAt, created.CreatedAt)
	}
}

func TestUpdate_Validation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, aliceID, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	empty := "  "
	if _, err := s.Update(ctx, aliceID, created.ID, Patch{TaskName: &empty}); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("empty taskName: expected validation, got %v", err)
	}

	badDate := "not-a-date"
	if _, err := s.Update(ctx, aliceID, created.ID, Patch{DueDate: &badDate}); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("bad dueDate: expected validation, got %v", err)
	}

	// failed updates must not leave partial writes behind
	got, err := s.Get(ctx, aliceID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TaskName != created.TaskName || got.DueDate != created.DueDate {
		t.Errorf("record changed by failed update: %+v", got)
	}
}

func TestDelete_ReturnsRecordAndIsIdempotentInEffect(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, aliceID, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := s.Delete(ctx, aliceID, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != created.ID || deleted.TaskName != created.TaskName {
		t.Errorf("delete must return the removed record, got %+v", deleted)
	}

	if _, err := s.Delete(ctx, aliceID, created.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("second delete: expected not found, got %v", err)
	}
	if _, err := s.Get(ctx, aliceID, created.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("get after delete: expected not found, got %v", err)
	}
}

func TestList_StableOrder(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	names := []string{"one", "two", "three"}
	for _, name := range names {
		input := sampleInput()
		input.TaskName = name
		if _, err := s.Create(ctx, aliceID, input); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := s.List(ctx, aliceID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(names) {
		t.Fatalf("expected %d tasks, got %d", len(names), len(list))
	}
	for i, name := range names {
		if list[i].TaskName != name {
			t.Errorf("position %d: expected %q, got %q", i, name, list[i].TaskName)
		}
	}
}
