package domain

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// Open reports whether the task still counts against its due date.
func (s TaskStatus) Open() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Title          string       `gorm:"type:varchar(500);not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	BoardID        uint         `gorm:"not null;index:idx_tasks_board_status" json:"board_id"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:BACKLOG;index:idx_tasks_board_status" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(10);not null;default:MEDIUM" json:"priority"`
	AssigneeID     *uint        `gorm:"index" json:"assignee_id,omitempty"`
	ReporterID     uint         `gorm:"not null;index" json:"reporter_id"`
	DueDate        *time.Time   `gorm:"index" json:"due_date,omitempty"`
	SLABreached    bool         `gorm:"not null;default:false" json:"sla_breached"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	gorm.Model
}

func (t *Task) AuditEntity() (string, uint) {
	return "Task", t.ID
}

// BeforeSave keeps CompletedAt coupled to the DONE status on every write:
// set when the task is DONE, cleared otherwise. Idempotent under repeated
// saves with the same status.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	if t.Status == TaskStatusDone {
		if t.CompletedAt == nil {
			now := time.Now()
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	return nil
}

type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TaskID   uint   `gorm:"not null;index" json:"task_id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	gorm.Model
}

func (c *Comment) AuditEntity() (string, uint) {
	return "Comment", c.ID
}
