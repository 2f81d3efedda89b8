package domain

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Owner       *User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	IsArchived  bool   `gorm:"not null;default:false" json:"is_archived"`
	gorm.Model
}

func (p *Project) AuditEntity() (string, uint) {
	return "Project", p.ID
}

// ProjectMember grants a per-project role. At most one row per
// (project, user) pair.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Role      Role      `gorm:"type:varchar(10);not null;default:MEMBER" json:"role"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (m *ProjectMember) AuditEntity() (string, uint) {
	return "ProjectMember", m.ID
}

type Board struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ProjectID   uint   `gorm:"not null;index:idx_boards_project_position" json:"project_id"`
	Position    uint   `gorm:"not null;default:0;index:idx_boards_project_position" json:"position"`
	gorm.Model
}

func (b *Board) AuditEntity() (string, uint) {
	return "Board", b.ID
}
