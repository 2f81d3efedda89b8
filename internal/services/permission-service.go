package services

import (
	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/repository"
)

// AccessLevel is what an operation needs on a project: MEMBER to view and
// work inside it, ADMIN to administer it (manage members, delete).
type AccessLevel int

const (
	AccessLevelMember AccessLevel = iota
	AccessLevelAdmin
)

// PermissionService decides whether an actor may act on a resource. It is a
// pure read path: no writes, no locks, and denial is a plain false — callers
// turn it into a 403 themselves.
type PermissionService interface {
	CanAccess(actor *domain.User, resource domain.AuditRecord, level AccessLevel) bool
}

type permissionService struct {
	projectRepo repository.ProjectRepository
	boardRepo   repository.BoardRepository
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
}

func NewPermissionService(
	projectRepo repository.ProjectRepository,
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
) PermissionService {
	return &permissionService{
		projectRepo: projectRepo,
		boardRepo:   boardRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
	}
}

// CanAccess resolves in order, first match wins:
//  1. global ADMIN → allowed
//  2. walk the ownership chain to the governing project; broken chain → denied
//  3. project owner → allowed
//  4. no membership → denied
//  5. MEMBER level → allowed
//  6. ADMIN level → allowed only for membership role ADMIN
func (s *permissionService) CanAccess(actor *domain.User, resource domain.AuditRecord, level AccessLevel) bool {
	if actor == nil || resource == nil {
		return false
	}
	if actor.Role.IsAdmin() {
		return true
	}

	project, err := s.governingProject(resource)
	if err != nil || project == nil {
		return false
	}

	if project.OwnerID == actor.ID {
		return true
	}

	member, err := s.projectRepo.FindMember(project.ID, actor.ID)
	if err != nil || member == nil {
		return false
	}

	if level == AccessLevelMember {
		return true
	}
	return member.Role == domain.RoleAdmin
}

// governingProject walks Task→Board→Project, Comment→Task→Board→Project,
// Membership→Project. A missing parent anywhere on the chain surfaces as an
// error, which CanAccess treats as denial.
func (s *permissionService) governingProject(resource domain.AuditRecord) (*domain.Project, error) {
	switch r := resource.(type) {
	case *domain.Project:
		return r, nil
	case *domain.Board:
		return s.projectRepo.FindProjectById(r.ProjectID)
	case *domain.ProjectMember:
		return s.projectRepo.FindProjectById(r.ProjectID)
	case *domain.Task:
		board, err := s.boardRepo.FindBoardById(r.BoardID)
		if err != nil {
			return nil, err
		}
		return s.projectRepo.FindProjectById(board.ProjectID)
	case *domain.Comment:
		task, err := s.taskRepo.FindTaskById(r.TaskID)
		if err != nil {
			return nil, err
		}
		board, err := s.boardRepo.FindBoardById(task.BoardID)
		if err != nil {
			return nil, err
		}
		return s.projectRepo.FindProjectById(board.ProjectID)
	}
	return nil, ErrNotFound
}
