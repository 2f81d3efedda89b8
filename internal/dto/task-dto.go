package dto

import "time"

type CreateTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	BoardID        uint       `json:"board_id"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssigneeID     *uint      `json:"assignee_id"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
}

type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Priority       *string    `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
}

type MoveTaskRequest struct {
	Status string `json:"status"`
}

type AssignTaskRequest struct {
	AssigneeID uint `json:"assignee_id"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

// TaskFilter narrows scoped task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status      string
	Priority    string
	AssigneeID  uint
	BoardID     uint
	SLABreached *bool
	DueFrom     *time.Time
	DueTo       *time.Time
	Limit       int
	Offset      int
}

type AuditLogFilter struct {
	Entity   string
	Action   string
	ActorID  uint
	EntityID uint
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
