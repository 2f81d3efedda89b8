package repository

import (
	"errors"
	"time"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"gorm.io/gorm"
)

type TaskRepository interface {
	CreateTask(task *domain.Task) (*domain.Task, error)
	FindTaskById(taskID uint) (*domain.Task, error)
	SaveTask(task *domain.Task) error
	DeleteTask(task *domain.Task) error

	// ListVisibleTasks scopes the listing to tasks whose governing project
	// the actor owns or is a member of; global admins see everything.
	ListVisibleTasks(actor *domain.User, filter dto.TaskFilter) ([]domain.Task, error)

	// MarkSLABreaches flags every overdue open task in a single update and
	// returns how many rows changed.
	MarkSLABreaches(now time.Time) (int64, error)

	ListOpenTasksByAssignee(userID uint) ([]domain.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) CreateTask(task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, errors.New("nil task")
	}
	if err := r.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindTaskById(taskID uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) SaveTask(task *domain.Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	return r.db.Save(task).Error
}

func (r *taskRepository) DeleteTask(task *domain.Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	return r.db.Delete(task).Error
}

func (r *taskRepository) ListVisibleTasks(actor *domain.User, filter dto.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task

	q := r.db.Model(&domain.Task{}).
		Joins("JOIN boards ON boards.id = tasks.board_id AND boards.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = boards.project_id AND projects.deleted_at IS NULL")

	if actor == nil {
		return tasks, nil
	}
	if !actor.Role.IsAdmin() {
		q = q.Where(
			"projects.owner_id = ? OR projects.id IN (?)",
			actor.ID,
			r.db.Model(&domain.ProjectMember{}).Select("project_id").Where("user_id = ?", actor.ID),
		)
	}

	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.AssigneeID != 0 {
		q = q.Where("tasks.assignee_id = ?", filter.AssigneeID)
	}
	if filter.BoardID != 0 {
		q = q.Where("tasks.board_id = ?", filter.BoardID)
	}
	if filter.SLABreached != nil {
		q = q.Where("tasks.sla_breached = ?", *filter.SLABreached)
	}
	if filter.DueFrom != nil {
		q = q.Where("tasks.due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		q = q.Where("tasks.due_date <= ?", *filter.DueTo)
	}

	err := q.Order("tasks.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) MarkSLABreaches(now time.Time) (int64, error) {
	res := r.db.Model(&domain.Task{}).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status IN ?", []domain.TaskStatus{
			domain.TaskStatusBacklog,
			domain.TaskStatusTodo,
			domain.TaskStatusInProgress,
		}).
		Where("sla_breached = ?", false).
		Update("sla_breached", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *taskRepository) ListOpenTasksByAssignee(userID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.Where("assignee_id = ?", userID).
		Where("status IN ?", []domain.TaskStatus{domain.TaskStatusTodo, domain.TaskStatusInProgress}).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
