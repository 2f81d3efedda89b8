package domain

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditRecord marks an entity whose writes belong to the audit trail.
// Exactly Task, Comment, Project, Board and ProjectMember implement it;
// anything else cannot be handed to the recorder.
type AuditRecord interface {
	AuditEntity() (name string, id uint)
}

// ActorInfo carries who is performing a mutation and where the request came
// from. It is threaded explicitly from the auth middleware down to the
// service layer; an ActorInfo with a nil Actor means a system-initiated
// change, which is not audited.
type ActorInfo struct {
	Actor     *User
	IPAddress *string
	UserAgent string
}

// AuditLog is append-only: rows are created by the recorder and never
// updated or deleted by the application. EntityID may dangle after the
// entity itself is removed.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ActorID   *uint          `gorm:"index" json:"actor_id"`
	Actor     *User          `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
	Action    AuditAction    `gorm:"type:varchar(10);not null" json:"action"`
	Entity    string         `gorm:"type:varchar(100);not null;index:idx_audit_entity" json:"entity"`
	EntityID  uint           `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Changes   datatypes.JSON `json:"changes"`
	IPAddress *string        `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent string         `gorm:"type:varchar(500)" json:"user_agent"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}
