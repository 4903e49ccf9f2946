package models

import "time"

// Owner values. Exactly two people share the board.
const (
	OwnerA = "ownerA"
	OwnerB = "ownerB"
)

// Status values are the three board columns.
const (
	StatusBacklog    = "backlog"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Priority    int       `json:"priority"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskInput is the create payload. Priority and Status are pointers so an
// absent key can be told apart from an explicit zero value; absent keys get
// the defaults (priority 1, status backlog).
type TaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Owner       string  `json:"owner"`
	Priority    *int    `json:"priority"`
	Status      *string `json:"status"`
}

// TaskPatch is the partial-update payload. A nil field keeps the stored
// value; a non-nil field overwrites it, including zero and empty string.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Owner       *string `json:"owner"`
	Priority    *int    `json:"priority"`
	Status      *string `json:"status"`
	Position    *int    `json:"position"`
}

// TaskMove is the move payload. Position defaults to 0 when absent.
type TaskMove struct {
	Status   string `json:"status"`
	Position *int   `json:"position"`
}

// DeletedTask is the broadcast payload for a removed row.
type DeletedTask struct {
	ID int `json:"id"`
}
