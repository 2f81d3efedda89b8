package repository

import (
	"errors"

	"github.com/SundayYogurt/task_service/internal/domain"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	CreateProject(project *domain.Project) (*domain.Project, error)
	FindProjectById(projectID uint) (*domain.Project, error)
	SaveProject(project *domain.Project) error
	DeleteProject(project *domain.Project) error

	// ListVisibleProjects returns projects the actor owns, is a member of,
	// or (for global admins) everything.
	ListVisibleProjects(actor *domain.User, archived *bool, limit, offset int) ([]domain.Project, error)

	FindMember(projectID, userID uint) (*domain.ProjectMember, error)
	AddMember(member *domain.ProjectMember) error
	RemoveMember(member *domain.ProjectMember) error
	ListMembers(projectID uint) ([]domain.ProjectMember, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) CreateProject(project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, errors.New("nil project")
	}
	if err := r.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) FindProjectById(projectID uint) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.First(&project, projectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) SaveProject(project *domain.Project) error {
	if project == nil {
		return errors.New("nil project")
	}
	return r.db.Save(project).Error
}

func (r *projectRepository) DeleteProject(project *domain.Project) error {
	if project == nil {
		return errors.New("nil project")
	}
	return r.db.Delete(project).Error
}

func (r *projectRepository) ListVisibleProjects(actor *domain.User, archived *bool, limit, offset int) ([]domain.Project, error) {
	var projects []domain.Project

	q := r.db.Model(&domain.Project{})
	if actor == nil || !actor.Role.IsAdmin() {
		if actor == nil {
			return projects, nil
		}
		q = q.Where(
			"projects.owner_id = ? OR projects.id IN (?)",
			actor.ID,
			r.db.Model(&domain.ProjectMember{}).Select("project_id").Where("user_id = ?", actor.ID),
		)
	}
	if archived != nil {
		q = q.Where("projects.is_archived = ?", *archived)
	}

	err := q.Order("projects.created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindMember(projectID, userID uint) (*domain.ProjectMember, error) {
	var member domain.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *projectRepository) AddMember(member *domain.ProjectMember) error {
	if member == nil {
		return errors.New("nil member")
	}
	return r.db.Create(member).Error
}

func (r *projectRepository) RemoveMember(member *domain.ProjectMember) error {
	if member == nil {
		return errors.New("nil member")
	}
	return r.db.Delete(member).Error
}

func (r *projectRepository) ListMembers(projectID uint) ([]domain.ProjectMember, error) {
	var members []domain.ProjectMember
	err := r.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
