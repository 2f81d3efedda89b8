package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestCreateEntryInsertsRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	actorID := uint(7)
	err := repo.CreateEntry(&domain.AuditLog{
		ActorID:  &actorID,
		Action:   domain.AuditActionCreate,
		Entity:   "Project",
		EntityID: 3,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntryRejectsNil(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewAuditRepository(db)

	assert.Error(t, repo.CreateEntry(nil))
}

func TestListEntriesAppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "actor_id", "action", "entity", "entity_id", "created_at"}).
		AddRow(2, 7, "UPDATE", "Task", 11, now).
		AddRow(1, 7, "CREATE", "Task", 11, now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT (.+) FROM "audit_logs" WHERE actor_id = (.+) AND entity = (.+) ORDER BY created_at DESC`).
		WithArgs(uint(7), "Task", 50).
		WillReturnRows(rows)

	entries, err := repo.ListEntries(dto.AuditLogFilter{Entity: "Task", Limit: 50}, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(2), entries[0].ID)
	assert.Equal(t, "Task", entries[0].Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntriesScopeOmittedForAdmins(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "audit_logs" ORDER BY created_at DESC`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity", "entity_id"}))

	entries, err := repo.ListEntries(dto.AuditLogFilter{Limit: 50}, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
