package models

import "time"

type Task struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	TaskName  string    `json:"taskName"`
	Detail    string    `json:"detail"`
	DueDate   string    `json:"dueDate"`
	Progress  string    `json:"progress"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Task) Clone() *Task {
	c := *t
	return &c
}
