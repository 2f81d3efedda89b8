package services

import (
	"encoding/json"
	"log"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/repository"
	"github.com/SundayYogurt/task_service/pkg/utils"
	"gorm.io/datatypes"
)

// AuditService appends one log row per committed create/update/delete of an
// audited entity, and serves the read API over the trail. Recording is
// best-effort: a failed insert is logged and swallowed, never surfaced to
// the mutation that triggered it, and never retried.
type AuditService interface {
	RecordCreate(actor domain.ActorInfo, entity domain.AuditRecord)
	RecordUpdate(actor domain.ActorInfo, entity domain.AuditRecord)
	RecordDelete(actor domain.ActorInfo, entity domain.AuditRecord)

	ListAuditLogs(actor *domain.User, filter dto.AuditLogFilter) ([]domain.AuditLog, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) RecordCreate(actor domain.ActorInfo, entity domain.AuditRecord) {
	s.record(actor, domain.AuditActionCreate, entity, snapshot(entity))
}

func (s *auditService) RecordUpdate(actor domain.ActorInfo, entity domain.AuditRecord) {
	s.record(actor, domain.AuditActionUpdate, entity, datatypes.JSON(`{"updated":true}`))
}

func (s *auditService) RecordDelete(actor domain.ActorInfo, entity domain.AuditRecord) {
	s.record(actor, domain.AuditActionDelete, entity, datatypes.JSON(`{"deleted":true}`))
}

func (s *auditService) record(actor domain.ActorInfo, action domain.AuditAction, entity domain.AuditRecord, changes datatypes.JSON) {
	// System mutations carry no actor and are deliberately left unaudited.
	if actor.Actor == nil {
		return
	}
	if entity == nil {
		return
	}

	name, id := entity.AuditEntity()
	actorID := actor.Actor.ID

	entry := &domain.AuditLog{
		ActorID:   &actorID,
		Action:    action,
		Entity:    name,
		EntityID:  id,
		Changes:   changes,
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	}

	if err := s.repo.CreateEntry(entry); err != nil {
		log.Printf("audit write failed (%s %s/%d): %v", action, name, id, err)
	}
}

// snapshot renders the committed entity to its JSON field mapping. Secret
// fields (the password hash) are already excluded by `json:"-"` tags on the
// models. A marshal failure degrades to a sentinel payload so the entry is
// still written.
func snapshot(entity domain.AuditRecord) datatypes.JSON {
	b, err := json.Marshal(entity)
	if err != nil {
		return datatypes.JSON(`{"error":"unable to serialize changes"}`)
	}
	return datatypes.JSON(b)
}

func (s *auditService) ListAuditLogs(actor *domain.User, filter dto.AuditLogFilter) ([]domain.AuditLog, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	filter.Limit, filter.Offset = utils.ClampLimitOffset(filter.Limit, filter.Offset)

	// Non-admin actors only see entries they authored.
	var scopeActorID uint
	if !actor.Role.IsAdmin() {
		scopeActorID = actor.ID
	}
	return s.repo.ListEntries(filter, scopeActorID)
}
