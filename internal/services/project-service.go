package services

import (
	"errors"
	"strings"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/helper"
	"github.com/SundayYogurt/task_service/internal/repository"
	"github.com/SundayYogurt/task_service/pkg/utils"
)

type ProjectService interface {
	CreateProject(actor domain.ActorInfo, input dto.CreateProjectRequest) (*domain.Project, error)
	GetProject(actor domain.ActorInfo, projectID uint) (*domain.Project, error)
	UpdateProject(actor domain.ActorInfo, projectID uint, input dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(actor domain.ActorInfo, projectID uint) error
	ListProjects(actor domain.ActorInfo, archived *bool, limit, offset int) ([]domain.Project, error)

	AddMember(actor domain.ActorInfo, projectID uint, input dto.AddMemberRequest) (*domain.ProjectMember, error)
	RemoveMember(actor domain.ActorInfo, projectID, userID uint) error
	ListMembers(actor domain.ActorInfo, projectID uint) ([]domain.ProjectMember, error)
}

type projectService struct {
	repo        repository.ProjectRepository
	userRepo    repository.UserRepository
	permissions PermissionService
	audit       AuditService
}

func NewProjectService(
	repo repository.ProjectRepository,
	userRepo repository.UserRepository,
	permissions PermissionService,
	audit AuditService,
) ProjectService {
	return &projectService{
		repo:        repo,
		userRepo:    userRepo,
		permissions: permissions,
		audit:       audit,
	}
}

func (s *projectService) CreateProject(actor domain.ActorInfo, input dto.CreateProjectRequest) (*domain.Project, error) {
	if actor.Actor == nil {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("project name is required")
	}

	project := &domain.Project{
		Name:        name,
		Description: input.Description,
		OwnerID:     actor.Actor.ID,
	}
	if _, err := s.repo.CreateProject(project); err != nil {
		return nil, err
	}

	s.audit.RecordCreate(actor, project)
	return project, nil
}

func (s *projectService) GetProject(actor domain.ActorInfo, projectID uint) (*domain.Project, error) {
	project, err := s.repo.FindProjectById(projectID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelMember) {
		return nil, ErrForbidden
	}
	return project, nil
}

func (s *projectService) UpdateProject(actor domain.ActorInfo, projectID uint, input dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.repo.FindProjectById(projectID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelMember) {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("project name is required")
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.IsArchived != nil {
		project.IsArchived = *input.IsArchived
	}

	if err := s.repo.SaveProject(project); err != nil {
		return nil, err
	}

	s.audit.RecordUpdate(actor, project)
	return project, nil
}

func (s *projectService) DeleteProject(actor domain.ActorInfo, projectID uint) error {
	project, err := s.repo.FindProjectById(projectID)
	if err != nil {
		return ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelAdmin) {
		return ErrForbidden
	}

	if err := s.repo.DeleteProject(project); err != nil {
		return err
	}

	s.audit.RecordDelete(actor, project)
	return nil
}

func (s *projectService) ListProjects(actor domain.ActorInfo, archived *bool, limit, offset int) ([]domain.Project, error) {
	if actor.Actor == nil {
		return nil, ErrForbidden
	}
	limit, offset = utils.ClampLimitOffset(limit, offset)
	return s.repo.ListVisibleProjects(actor.Actor, archived, limit, offset)
}

func (s *projectService) AddMember(actor domain.ActorInfo, projectID uint, input dto.AddMemberRequest) (*domain.ProjectMember, error) {
	project, err := s.repo.FindProjectById(projectID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelAdmin) {
		return nil, ErrForbidden
	}

	if _, err := s.userRepo.FindUserById(input.UserID); err != nil {
		return nil, errors.New("user not found")
	}

	role := domain.Role(strings.ToUpper(strings.TrimSpace(input.Role)))
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}

	if existing, err := s.repo.FindMember(projectID, input.UserID); err == nil && existing != nil {
		return nil, errors.New("user is already a member")
	}

	member := &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    input.UserID,
		Role:      role,
	}
	if err := s.repo.AddMember(member); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, errors.New("user is already a member")
		}
		return nil, err
	}

	s.audit.RecordCreate(actor, member)
	return member, nil
}

func (s *projectService) RemoveMember(actor domain.ActorInfo, projectID, userID uint) error {
	project, err := s.repo.FindProjectById(projectID)
	if err != nil {
		return ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelAdmin) {
		return ErrForbidden
	}

	member, err := s.repo.FindMember(projectID, userID)
	if err != nil {
		return ErrNotFound
	}
	if member.UserID == project.OwnerID {
		return errors.New("cannot remove project owner")
	}

	if err := s.repo.RemoveMember(member); err != nil {
		return err
	}

	s.audit.RecordDelete(actor, member)
	return nil
}

func (s *projectService) ListMembers(actor domain.ActorInfo, projectID uint) ([]domain.ProjectMember, error) {
	project, err := s.repo.FindProjectById(projectID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelMember) {
		return nil, ErrForbidden
	}
	return s.repo.ListMembers(projectID)
}
