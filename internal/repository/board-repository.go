package repository

import (
	"errors"

	"github.com/SundayYogurt/task_service/internal/domain"
	"gorm.io/gorm"
)

type BoardRepository interface {
	CreateBoard(board *domain.Board) (*domain.Board, error)
	FindBoardById(boardID uint) (*domain.Board, error)
	SaveBoard(board *domain.Board) error
	DeleteBoard(board *domain.Board) error
	ListBoardsByProject(projectID uint) ([]domain.Board, error)
	NextPosition(projectID uint) (uint, error)
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) CreateBoard(board *domain.Board) (*domain.Board, error) {
	if board == nil {
		return nil, errors.New("nil board")
	}
	if err := r.db.Create(board).Error; err != nil {
		return nil, err
	}
	return board, nil
}

func (r *boardRepository) FindBoardById(boardID uint) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.First(&board, boardID).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) SaveBoard(board *domain.Board) error {
	if board == nil {
		return errors.New("nil board")
	}
	return r.db.Save(board).Error
}

func (r *boardRepository) DeleteBoard(board *domain.Board) error {
	if board == nil {
		return errors.New("nil board")
	}
	return r.db.Delete(board).Error
}

func (r *boardRepository) ListBoardsByProject(projectID uint) ([]domain.Board, error) {
	var boards []domain.Board
	err := r.db.Where("project_id = ?", projectID).
		Order("position ASC, created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// NextPosition hands out max(position)+1 so positions stay monotonic within
// a project and are never reused after a delete. Unscoped so soft-deleted
// boards still hold their slot.
func (r *boardRepository) NextPosition(projectID uint) (uint, error) {
	var max *uint
	err := r.db.Model(&domain.Board{}).Unscoped().
		Where("project_id = ?", projectID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
