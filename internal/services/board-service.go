package services

import (
	"errors"
	"strings"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/repository"
)

type BoardService interface {
	CreateBoard(actor domain.ActorInfo, input dto.CreateBoardRequest) (*domain.Board, error)
	GetBoard(actor domain.ActorInfo, boardID uint) (*domain.Board, error)
	UpdateBoard(actor domain.ActorInfo, boardID uint, input dto.UpdateBoardRequest) (*domain.Board, error)
	DeleteBoard(actor domain.ActorInfo, boardID uint) error
	ListBoards(actor domain.ActorInfo, projectID uint) ([]domain.Board, error)
}

type boardService struct {
	repo        repository.BoardRepository
	projectRepo repository.ProjectRepository
	permissions PermissionService
	audit       AuditService
}

func NewBoardService(
	repo repository.BoardRepository,
	projectRepo repository.ProjectRepository,
	permissions PermissionService,
	audit AuditService,
) BoardService {
	return &boardService{
		repo:        repo,
		projectRepo: projectRepo,
		permissions: permissions,
		audit:       audit,
	}
}

func (s *boardService) CreateBoard(actor domain.ActorInfo, input dto.CreateBoardRequest) (*domain.Board, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("board name is required")
	}

	project, err := s.projectRepo.FindProjectById(input.ProjectID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelMember) {
		return nil, ErrForbidden
	}

	position, err := s.repo.NextPosition(project.ID)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{
		Name:        name,
		Description: input.Description,
		ProjectID:   project.ID,
		Position:    position,
	}
	if _, err := s.repo.CreateBoard(board); err != nil {
		return nil, err
	}

	s.audit.RecordCreate(actor, board)
	return board, nil
}

func (s *boardService) GetBoard(actor domain.ActorInfo, boardID uint) (*domain.Board, error) {
	board, err := s.repo.FindBoardById(boardID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, board, AccessLevelMember) {
		return nil, ErrForbidden
	}
	return board, nil
}

func (s *boardService) UpdateBoard(actor domain.ActorInfo, boardID uint, input dto.UpdateBoardRequest) (*domain.Board, error) {
	board, err := s.repo.FindBoardById(boardID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, board, AccessLevelMember) {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("board name is required")
		}
		board.Name = name
	}
	if input.Description != nil {
		board.Description = *input.Description
	}

	if err := s.repo.SaveBoard(board); err != nil {
		return nil, err
	}

	s.audit.RecordUpdate(actor, board)
	return board, nil
}

func (s *boardService) DeleteBoard(actor domain.ActorInfo, boardID uint) error {
	board, err := s.repo.FindBoardById(boardID)
	if err != nil {
		return ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, board, AccessLevelMember) {
		return ErrForbidden
	}

	if err := s.repo.DeleteBoard(board); err != nil {
		return err
	}

	s.audit.RecordDelete(actor, board)
	return nil
}

func (s *boardService) ListBoards(actor domain.ActorInfo, projectID uint) ([]domain.Board, error) {
	project, err := s.projectRepo.FindProjectById(projectID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.permissions.CanAccess(actor.Actor, project, AccessLevelMember) {
		return nil, ErrForbidden
	}
	return s.repo.ListBoardsByProject(projectID)
}
