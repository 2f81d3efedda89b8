package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/repository"
)

// MailSender is what the background jobs need from the mailer.
type MailSender interface {
	Send(to, subject, body string) error
}

// JobsService runs the system-privilege background work: the SLA sweep, the
// daily digest and assignment notifications. None of it goes through the
// permission evaluator, and none of its writes carry an actor, so they are
// not audited.
type JobsService interface {
	CheckSLABreaches() (int64, error)
	SendDailyDigest() error
	NotifyTaskAssigned(event dto.TaskAssignedEvent) error
}

type jobsService struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
	mailer    MailSender
}

func NewJobsService(
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	mailer MailSender,
) JobsService {
	return &jobsService{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
		mailer:    mailer,
	}
}

func (s *jobsService) CheckSLABreaches() (int64, error) {
	count, err := s.taskRepo.MarkSLABreaches(time.Now())
	if err != nil {
		return 0, err
	}
	log.Printf("marked %d tasks as SLA breached", count)
	return count, nil
}

func (s *jobsService) SendDailyDigest() error {
	users, err := s.userRepo.ListActiveUsers()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, user := range users {
		tasks, err := s.taskRepo.ListOpenTasksByAssignee(user.ID)
		if err != nil {
			log.Printf("digest: list tasks for %s error: %v", user.Email, err)
			continue
		}
		if len(tasks) == 0 {
			continue
		}

		subject := fmt.Sprintf("Daily Task Summary - %s", now.Format("2006-01-02"))
		body := composeDigest(user, tasks, now)

		if err := s.mailer.Send(user.Email, subject, body); err != nil {
			log.Printf("digest: send to %s error: %v", user.Email, err)
			continue
		}
	}
	return nil
}

func composeDigest(user domain.User, tasks []domain.Task, now time.Time) string {
	var overdue []domain.Task
	dueToday := 0
	highPriority := 0

	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Before(now) {
			overdue = append(overdue, t)
		}
		if t.DueDate != nil && sameDay(*t.DueDate, now) {
			dueToday++
		}
		if t.Priority == domain.TaskPriorityHigh || t.Priority == domain.TaskPriorityCritical {
			highPriority++
		}
	}

	name := user.DisplayName
	if name == "" {
		name = user.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	b.WriteString("Here's your daily task summary:\n\n")
	fmt.Fprintf(&b, "Total Active Tasks: %d\n", len(tasks))
	fmt.Fprintf(&b, "Overdue Tasks: %d\n", len(overdue))
	fmt.Fprintf(&b, "Due Today: %d\n", dueToday)
	fmt.Fprintf(&b, "High Priority: %d\n", highPriority)

	if len(overdue) > 0 {
		b.WriteString("\nOverdue Tasks:\n")
		for i, t := range overdue {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (Due: %s)\n", t.Title, t.DueDate.Format("2006-01-02"))
		}
	}

	b.WriteString("\nPlease review and update your tasks in the system.\n")
	return b.String()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *jobsService) NotifyTaskAssigned(event dto.TaskAssignedEvent) error {
	task, err := s.taskRepo.FindTaskById(event.TaskID)
	if err != nil {
		return errors.New("assigned task not found")
	}
	assignee, err := s.userRepo.FindUserById(event.AssigneeID)
	if err != nil {
		return errors.New("assignee not found")
	}

	boardName := ""
	if board, err := s.boardRepo.FindBoardById(task.BoardID); err == nil {
		boardName = board.Name
	}

	name := assignee.DisplayName
	if name == "" {
		name = assignee.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	b.WriteString("You have been assigned a new task:\n\n")
	fmt.Fprintf(&b, "Task: %s\n", task.Title)
	if boardName != "" {
		fmt.Fprintf(&b, "Board: %s\n", boardName)
	}
	fmt.Fprintf(&b, "Priority: %s\n", task.Priority)
	if event.AssignedBy != "" {
		fmt.Fprintf(&b, "Assigned By: %s\n", event.AssignedBy)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, "Due Date: %s\n", task.DueDate.Format("2006-01-02 15:04"))
	}
	if task.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", task.Description)
	}
	b.WriteString("\nPlease check the task management system for more details.\n")

	subject := fmt.Sprintf("New Task Assigned: %s", task.Title)
	return s.mailer.Send(assignee.Email, subject, b.String())
}
