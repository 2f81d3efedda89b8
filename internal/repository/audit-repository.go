package repository

import (
	"errors"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"gorm.io/gorm"
)

type AuditRepository interface {
	CreateEntry(entry *domain.AuditLog) error

	// ListEntries returns audit rows newest first. When scopeActorID is
	// non-zero only entries authored by that actor are returned.
	ListEntries(filter dto.AuditLogFilter, scopeActorID uint) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateEntry(entry *domain.AuditLog) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}
	return r.db.Create(entry).Error
}

func (r *auditRepository) ListEntries(filter dto.AuditLogFilter, scopeActorID uint) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog

	q := r.db.Model(&domain.AuditLog{})
	if scopeActorID != 0 {
		q = q.Where("actor_id = ?", scopeActorID)
	}
	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.ActorID != 0 {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.EntityID != 0 {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
