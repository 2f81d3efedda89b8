package services

import (
	"testing"
	"time"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newJobsSvc(env *testEnv, mailer *fakeMailer) JobsService {
	return NewJobsService(env.taskRepo, env.boardRepo, env.userRepo, mailer)
}

func (e *testEnv) createTask(t *testing.T, board *domain.Board, reporter *domain.User, mutate func(*domain.Task)) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Title:      "Task",
		BoardID:    board.ID,
		ReporterID: reporter.ID,
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
	}
	if mutate != nil {
		mutate(task)
	}
	require.NoError(t, e.db.Create(task).Error)
	return task
}

func TestCheckSLABreachesMarksOnlyOverdueOpenTasks(t *testing.T) {
	env := newTestEnv(t)
	svc := newJobsSvc(env, &fakeMailer{})

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	_, board, _ := env.createChain(t, owner)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	overdue := env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "Overdue open"
		task.DueDate = &past
	})
	done := env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "Overdue done"
		task.DueDate = &past
		task.Status = domain.TaskStatusDone
	})
	upcoming := env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "Not due yet"
		task.DueDate = &future
	})
	noDue := env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "No due date"
	})

	count, err := svc.CheckSLABreaches()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	for _, tc := range []struct {
		id       uint
		breached bool
	}{
		{overdue.ID, true},
		{done.ID, false},
		{upcoming.ID, false},
		{noDue.ID, false},
	} {
		var got domain.Task
		require.NoError(t, env.db.First(&got, tc.id).Error)
		assert.Equal(t, tc.breached, got.SLABreached, "task %d", tc.id)
	}

	// second sweep finds nothing new
	count, err = svc.CheckSLABreaches()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSendDailyDigestSkipsUsersWithoutOpenTasks(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newJobsSvc(env, mailer)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	env.createUser(t, "idle@example.com", domain.RoleMember)
	_, board, _ := env.createChain(t, owner)

	past := time.Now().Add(-24 * time.Hour)
	env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "Overdue report"
		task.AssigneeID = &owner.ID
		task.DueDate = &past
	})
	env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "High priority fix"
		task.AssigneeID = &owner.ID
		task.Priority = domain.TaskPriorityHigh
	})
	env.createTask(t, board, owner, func(task *domain.Task) {
		task.Title = "Finished already"
		task.AssigneeID = &owner.ID
		task.Status = domain.TaskStatusDone
	})

	require.NoError(t, svc.SendDailyDigest())

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "owner@example.com", mail.to)
	assert.Contains(t, mail.subject, "Daily Task Summary")
	assert.Contains(t, mail.body, "Total Active Tasks: 2")
	assert.Contains(t, mail.body, "Overdue Tasks: 1")
	assert.Contains(t, mail.body, "High Priority: 1")
	assert.Contains(t, mail.body, "Overdue report")
}

func TestNotifyTaskAssignedComposesMail(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newJobsSvc(env, mailer)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	assignee := env.createUser(t, "assignee@example.com", domain.RoleMember)
	_, _, task := env.createChain(t, owner)

	err := svc.NotifyTaskAssigned(dto.TaskAssignedEvent{
		TaskID:     task.ID,
		AssigneeID: assignee.ID,
		AssignedBy: owner.Email,
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "assignee@example.com", mail.to)
	assert.Equal(t, "New Task Assigned: Fix bug", mail.subject)
	assert.Contains(t, mail.body, "Board: Sprint1")
	assert.Contains(t, mail.body, "Assigned By: owner@example.com")
}

func TestNotifyTaskAssignedUnknownIDs(t *testing.T) {
	env := newTestEnv(t)
	svc := newJobsSvc(env, &fakeMailer{})

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	_, _, task := env.createChain(t, owner)

	err := svc.NotifyTaskAssigned(dto.TaskAssignedEvent{TaskID: 9999, AssigneeID: owner.ID})
	assert.EqualError(t, err, "assigned task not found")

	err = svc.NotifyTaskAssigned(dto.TaskAssignedEvent{TaskID: task.ID, AssigneeID: 9999})
	assert.EqualError(t, err, "assignee not found")
}
