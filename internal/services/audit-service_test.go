package services

import (
	"encoding/json"
	"testing"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorInfo(user *domain.User) domain.ActorInfo {
	ip := "203.0.113.7"
	return domain.ActorInfo{
		Actor:     user,
		IPAddress: &ip,
		UserAgent: "go-test/1.0",
	}
}

func (e *testEnv) allEntries(t *testing.T) []domain.AuditLog {
	t.Helper()
	var entries []domain.AuditLog
	require.NoError(t, e.db.Find(&entries).Error)
	return entries
}

func TestRecordCreateWritesSnapshot(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	project, _, _ := env.createChain(t, owner)

	env.audit.RecordCreate(actorInfo(owner), project)

	entries := env.allEntries(t)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, domain.AuditActionCreate, entry.Action)
	assert.Equal(t, "Project", entry.Entity)
	assert.Equal(t, project.ID, entry.EntityID)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, owner.ID, *entry.ActorID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "203.0.113.7", *entry.IPAddress)
	assert.Equal(t, "go-test/1.0", entry.UserAgent)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Changes, &payload))
	assert.Equal(t, "Acme", payload["name"])
	assert.Contains(t, payload, "owner_id")
	assert.NotContains(t, payload, "password")
	assert.NotContains(t, payload, "password_hash")
}

func TestRecordUpdateWritesMarkerOnly(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	_, _, task := env.createChain(t, owner)

	env.audit.RecordUpdate(actorInfo(owner), task)

	entries := env.allEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionUpdate, entries[0].Action)
	assert.JSONEq(t, `{"updated":true}`, string(entries[0].Changes))
}

func TestRecordDeleteWritesMarkerOnly(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	_, _, task := env.createChain(t, owner)

	env.audit.RecordDelete(actorInfo(owner), task)

	entries := env.allEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionDelete, entries[0].Action)
	assert.Equal(t, "Task", entries[0].Entity)
	assert.JSONEq(t, `{"deleted":true}`, string(entries[0].Changes))
}

func TestRecordWithoutActorWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	project, _, task := env.createChain(t, owner)

	env.audit.RecordCreate(domain.ActorInfo{}, project)
	env.audit.RecordUpdate(domain.ActorInfo{}, task)
	env.audit.RecordDelete(domain.ActorInfo{}, task)

	assert.Len(t, env.allEntries(t), 0)
}

type unencodable struct {
	Ch chan int
}

func (u *unencodable) AuditEntity() (string, uint) {
	return "Unencodable", 1
}

func TestRecordCreateSerializationFailureDegradesToSentinel(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)

	env.audit.RecordCreate(actorInfo(owner), &unencodable{Ch: make(chan int)})

	entries := env.allEntries(t)
	require.Len(t, entries, 1)
	assert.JSONEq(t, `{"error":"unable to serialize changes"}`, string(entries[0].Changes))
}

func TestMutationPathsRecordExactlyOneEntry(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	projectSvc := NewProjectService(env.projectRepo, env.userRepo, env.permissions, env.audit)

	project, err := projectSvc.CreateProject(actorInfo(owner), dto.CreateProjectRequest{Name: "Audit Me"})
	require.NoError(t, err)
	require.Len(t, env.allEntries(t), 1)

	require.NoError(t, projectSvc.DeleteProject(actorInfo(owner), project.ID))

	entries := env.allEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditActionCreate, entries[0].Action)
	assert.Equal(t, domain.AuditActionDelete, entries[1].Action)

	// the delete did not touch the earlier entry
	assert.Equal(t, project.ID, entries[0].EntityID)
}

func TestListAuditLogsScopedForNonAdmins(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser(t, "alice@example.com", domain.RoleMember)
	bob := env.createUser(t, "bob@example.com", domain.RoleMember)
	admin := env.createUser(t, "admin@example.com", domain.RoleAdmin)

	project, _, _ := env.createChain(t, alice)
	env.audit.RecordCreate(actorInfo(alice), project)
	env.audit.RecordUpdate(actorInfo(bob), project)

	mine, err := env.audit.ListAuditLogs(alice, dto.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, *mine[0].ActorID)

	all, err := env.audit.ListAuditLogs(admin, dto.AuditLogFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := env.audit.ListAuditLogs(admin, dto.AuditLogFilter{Action: "UPDATE"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, bob.ID, *filtered[0].ActorID)
}
