package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/interfaces"
	"github.com/SundayYogurt/task_service/internal/repository"
	"github.com/SundayYogurt/task_service/pkg/utils"
)

type TaskService interface {
	CreateTask(actor domain.ActorInfo, input dto.CreateTaskRequest) (*domain.Task, error)
	GetTask(actor domain.ActorInfo, taskID uint) (*domain.Task, error)
	UpdateTask(actor domain.ActorInfo, taskID uint, input dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(actor domain.ActorInfo, taskID uint) error
	ListTasks(actor domain.ActorInfo, filter dto.TaskFilter) ([]domain.Task, error)

	// MoveTask changes the status; the enum is validated but transitions are
	// free-form (any status to any status).
	MoveTask(actor domain.ActorInfo, taskID uint, status string) (*domain.Task, error)
	AssignTask(actor domain.ActorInfo, taskID, assigneeID uint) (*domain.Task, error)

	AddComment(actor domain.ActorInfo, taskID uint, input dto.CreateCommentRequest) (*domain.Comment, error)
	DeleteComment(actor domain.ActorInfo, commentID uint) error
	ListComments(actor domain.ActorInfo, taskID uint, limit, offset int) ([]domain.Comment, error)
}

type taskService struct {
	repo        repository.TaskRepository
	commentRepo repository.CommentRepository
	boardRepo   repository.BoardRepository
	userRepo    repository.UserRepository
	permissions PermissionService
	audit       AuditService
	producer    interfaces.ProducerHandler
}

func NewTaskService(
	repo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	permissions PermissionService,
	audit AuditService,
	producer interfaces.ProducerHandler,
) TaskService {
	return &taskService{
		repo:        repo,
		commentRepo: commentRepo,
		boardRepo:   boardRepo,
		userRepo:    userRepo,
		permissions: permissions,
		audit:       audit,
		producer:    producer,
	}
}

func (s *taskService) CreateTask(actor domain.ActorInfo, input dto.CreateTaskRequest) (*domain.Task, error) {
	if actor.Actor == nil {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("task title is required")
	}

	board, err := s.boardRepo.FindBoardById(input.BoardID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, board, AccessLevelMember) {
		return nil, ErrForbidden
	}

	status := domain.TaskStatusBacklog
	if input.Status != "" {
		status = domain.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, errors.New("invalid status")
		}
	}
	priority := domain.TaskPriorityMedium
	if input.Priority != "" {
		priority = domain.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, errors.New("invalid priority")
		}
	}

	task := &domain.Task{
		Title:          title,
		Description:    input.Description,
		BoardID:        board.ID,
		Status:         status,
		Priority:       priority,
		AssigneeID:     input.AssigneeID,
		ReporterID:     actor.Actor.ID,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
	}
	if _, err := s.repo.CreateTask(task); err != nil {
		return nil, err
	}

	s.audit.RecordCreate(actor, task)

	if task.AssigneeID != nil {
		s.publishAssigned(task, *task.AssigneeID, actor)
	}
	return task, nil
}

func (s *taskService) GetTask(actor domain.ActorInfo, taskID uint) (*domain.Task, error) {
	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *taskService) UpdateTask(actor domain.ActorInfo, taskID uint, input dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("task title is required")
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		priority := domain.TaskPriority(*input.Priority)
		if !priority.Valid() {
			return nil, errors.New("invalid priority")
		}
		task.Priority = priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}

	if err := s.repo.SaveTask(task); err != nil {
		return nil, err
	}

	s.audit.RecordUpdate(actor, task)
	return task, nil
}

func (s *taskService) DeleteTask(actor domain.ActorInfo, taskID uint) error {
	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return ErrForbidden
	}

	if err := s.repo.DeleteTask(task); err != nil {
		return err
	}

	s.audit.RecordDelete(actor, task)
	return nil
}

func (s *taskService) ListTasks(actor domain.ActorInfo, filter dto.TaskFilter) ([]domain.Task, error) {
	if actor.Actor == nil {
		return nil, ErrForbidden
	}
	filter.Limit, filter.Offset = utils.ClampLimitOffset(filter.Limit, filter.Offset)
	return s.repo.ListVisibleTasks(actor.Actor, filter)
}

func (s *taskService) MoveTask(actor domain.ActorInfo, taskID uint, status string) (*domain.Task, error) {
	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return nil, ErrForbidden
	}

	newStatus := domain.TaskStatus(status)
	if !newStatus.Valid() {
		return nil, errors.New("invalid status")
	}

	task.Status = newStatus
	if err := s.repo.SaveTask(task); err != nil {
		return nil, err
	}

	s.audit.RecordUpdate(actor, task)
	return task, nil
}

func (s *taskService) AssignTask(actor domain.ActorInfo, taskID, assigneeID uint) (*domain.Task, error) {
	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return nil, ErrForbidden
	}

	if _, err := s.userRepo.FindUserById(assigneeID); err != nil {
		return nil, errors.New("assignee not found")
	}

	task.AssigneeID = &assigneeID
	if err := s.repo.SaveTask(task); err != nil {
		return nil, err
	}

	s.audit.RecordUpdate(actor, task)
	s.publishAssigned(task, assigneeID, actor)
	return task, nil
}

// publishAssigned hands the notification to the broker. Delivery is
// fire-and-forget: a publish failure must not fail the assignment.
func (s *taskService) publishAssigned(task *domain.Task, assigneeID uint, actor domain.ActorInfo) {
	if s.producer == nil {
		return
	}

	event := dto.TaskAssignedEvent{
		TaskID:     task.ID,
		AssigneeID: assigneeID,
	}
	if actor.Actor != nil {
		event.AssignedBy = actor.Actor.Email
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal task assigned event error: %v", err)
		return
	}

	key := []byte(fmt.Sprintf("task-%d", task.ID))
	if err := s.producer.PublishMessage(key, payload); err != nil {
		log.Printf("publish task assigned event error: %v", err)
	}
}

func (s *taskService) AddComment(actor domain.ActorInfo, taskID uint, input dto.CreateCommentRequest) (*domain.Comment, error) {
	if actor.Actor == nil {
		return nil, ErrForbidden
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.New("comment content is required")
	}

	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return nil, ErrForbidden
	}

	comment := &domain.Comment{
		TaskID:   task.ID,
		AuthorID: actor.Actor.ID,
		Content:  content,
	}
	if _, err := s.commentRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	s.audit.RecordCreate(actor, comment)
	return comment, nil
}

func (s *taskService) DeleteComment(actor domain.ActorInfo, commentID uint) error {
	comment, err := s.commentRepo.FindCommentById(commentID)
	if err != nil {
		return ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, comment, AccessLevelMember) {
		return ErrForbidden
	}

	if err := s.commentRepo.DeleteComment(comment); err != nil {
		return err
	}

	s.audit.RecordDelete(actor, comment)
	return nil
}

func (s *taskService) ListComments(actor domain.ActorInfo, taskID uint, limit, offset int) ([]domain.Comment, error) {
	task, err := s.repo.FindTaskById(taskID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, task, AccessLevelMember) {
		return nil, ErrForbidden
	}

	limit, offset = utils.ClampLimitOffset(limit, offset)
	return s.commentRepo.ListCommentsByTask(taskID, limit, offset)
}
