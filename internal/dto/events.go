package dto

type TaskAssignedEvent struct {
	TaskID     uint   `json:"task_id"`
	AssigneeID uint   `json:"assignee_id"`
	AssignedBy string `json:"assigned_by"`
}
